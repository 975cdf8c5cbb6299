package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/config"
	"github.com/appcellar/appcellar/internal/installer"
	"github.com/appcellar/appcellar/internal/logging"
)

var (
	installAll bool
	installYes bool
)

var installCmd = &cobra.Command{
	Use:   "install <category> <subcategory> [name...]",
	Short: "Install catalog entries without the interactive browser",
	Long: `Install runs the same backends as the interactive browser against a
subcategory of the catalog. Name entries explicitly, or pass --all to
install the whole subcategory.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installAll, "all", false, "Install every entry in the subcategory")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	category, subcategory, names := args[0], args[1], args[2:]
	if installAll && len(names) > 0 {
		return fmt.Errorf("--all cannot be combined with entry names")
	}
	if !installAll && len(names) == 0 {
		return fmt.Errorf("name at least one entry or pass --all")
	}

	store, err := catalog.Load(config.CatalogPath())
	if err != nil {
		return err
	}

	var recs []catalog.Record
	if installAll {
		recs = store.Records(category, subcategory)
		if len(recs) == 0 {
			return fmt.Errorf("no entries under %s / %s", category, subcategory)
		}
	} else {
		for _, name := range names {
			rec, ok := store.Find(category, subcategory, name)
			if !ok {
				return fmt.Errorf("no entry named %q under %s / %s", name, category, subcategory)
			}
			recs = append(recs, rec)
		}
	}

	logger, logFile, err := logging.Open(config.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts := []installer.Option{
		installer.WithReleaseClient(newGitHubClient()),
		installer.WithLogger(logger),
	}
	if !installYes {
		in := bufio.NewScanner(cmd.InOrStdin())
		opts = append(opts, installer.WithConfirm(func(prompt string) bool {
			fmt.Fprint(cmd.OutOrStdout(), prompt+" [y/N]: ")
			if !in.Scan() {
				return false
			}
			answer := strings.ToLower(strings.TrimSpace(in.Text()))
			return answer == "y" || answer == "yes"
		}))
	}
	if dir := config.InstallDir(); dir != "" {
		opts = append(opts, installer.WithInstallDir(dir))
	}

	summary := installer.New(opts...).InstallAll(cmd.Context(), recs)
	if summary.Aborted {
		fmt.Fprintln(cmd.OutOrStdout(), "Installation aborted.")
		return nil
	}

	for _, o := range summary.Outcomes {
		status := "OK"
		if !o.Success {
			status = "FAIL"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", status, o.Name, o.Message)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Done: %d succeeded, %d failed.\n", summary.Succeeded, summary.Failed)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d install(s) failed", summary.Failed, summary.Total())
	}
	return nil
}
