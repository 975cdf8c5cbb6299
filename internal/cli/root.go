package cli

import (
	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/config"
	"github.com/appcellar/appcellar/internal/github"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "appcellar",
	Short: "Catalog-driven software installer for Windows",
	Long: `appcellar browses a curated catalog of installable software, installs
selections through winget, MSI, EXE, PowerShell, and GitHub releases, and
keeps an inventory of what is already on the machine.

Run without arguments to open the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runBrowse,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// newGitHubClient builds the release client, picking up the configured
// token for higher rate limits.
func newGitHubClient() *github.Client {
	var opts []github.Option
	if token := config.GitHubToken(); token != "" {
		opts = append(opts, github.WithToken(token))
	}
	return github.NewClient(opts...)
}
