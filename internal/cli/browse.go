package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/config"
	"github.com/appcellar/appcellar/internal/discovery"
	"github.com/appcellar/appcellar/internal/installer"
	"github.com/appcellar/appcellar/internal/inventory"
	"github.com/appcellar/appcellar/internal/logging"
	"github.com/appcellar/appcellar/internal/navigator"
	"github.com/appcellar/appcellar/internal/winget"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog and install software interactively",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	store, err := catalog.Load(config.CatalogPath())
	if err != nil {
		return err
	}

	logger, logFile, err := logging.Open(config.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	wg := winget.New()
	gh := newGitHubClient()

	// The session owns the one stdin scanner; install confirmations read
	// through it, so the dispatcher's confirm closes over the session.
	var sess *navigator.Session
	opts := []installer.Option{
		installer.WithReleaseClient(gh),
		installer.WithLogger(logger),
		installer.WithConfirm(func(prompt string) bool { return sess.Confirm(prompt) }),
	}
	if dir := config.InstallDir(); dir != "" {
		opts = append(opts, installer.WithInstallDir(dir))
	}
	disp := installer.New(opts...)

	sess = navigator.New(navigator.Config{
		Catalog:     store,
		CatalogPath: config.CatalogPath(),
		Installer:   disp,
		Sources: []discovery.Searcher{
			&discovery.WingetSearcher{CLI: wg},
			&discovery.GitHubSearcher{Client: gh, Log: logger},
		},
		Inventory: func(ctx context.Context) ([]inventory.Item, error) {
			return inventory.Collect(ctx, wg)
		},
		VerifyWingetID: wg.Show,
		ExportPath: filepath.Join(config.Dir(), "inventory.json"),
		Log:        logger,
		PageSize:   config.PageSize(),
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	})
	return sess.Run(cmd.Context())
}
