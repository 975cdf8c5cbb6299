package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/config"
	"github.com/appcellar/appcellar/internal/export"
	"github.com/appcellar/appcellar/internal/inventory"
	"github.com/appcellar/appcellar/internal/winget"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the installed-software inventory to a JSON file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination file (default ~/.appcellar/inventory.json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := exportOutput
	if path == "" {
		path = filepath.Join(config.Dir(), "inventory.json")
	}

	items, err := inventory.Collect(cmd.Context(), winget.New())
	if err != nil {
		return err
	}

	if err := export.WriteJSON(path, items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d item(s) to %s\n", len(items), path)
	return nil
}
