package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the software catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog document against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.CatalogPath()
		if len(args) > 0 {
			path = args[0]
		}

		store, err := catalog.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog is valid: %d record(s) in %s\n", store.Len(), path)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the catalog tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.Load(config.CatalogPath())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, cat := range store.Categories() {
			fmt.Fprintln(out, cat)
			for _, sub := range store.Subcategories(cat) {
				fmt.Fprintf(out, "  %s\n", sub)
				for _, rec := range store.Records(cat, sub) {
					fmt.Fprintf(out, "    %s (%s) - %s\n", rec.Name, rec.Type, rec.Description)
				}
			}
		}
		return nil
	},
}

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter catalog file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.CatalogPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("catalog already exists at %s", path)
		}

		store, err := catalog.New(starterDocument())
		if err != nil {
			return err
		}
		if err := store.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created starter catalog at %s\n", path)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogInitCmd)
	rootCmd.AddCommand(catalogCmd)
}

// starterDocument seeds a new installation with a small working catalog.
func starterDocument() catalog.Document {
	return catalog.Document{
		"Development": {
			"Editors": {
				{
					Name:        "Visual Studio Code",
					Type:        catalog.TypeWinget,
					Description: "Source-code editor from Microsoft",
					ID:          "Microsoft.VisualStudioCode",
				},
				{
					Name:        "Neovim",
					Type:        catalog.TypeWinget,
					Description: "Hyperextensible Vim-based text editor",
					ID:          "Neovim.Neovim",
				},
			},
			"Version Control": {
				{
					Name:        "Git",
					Type:        catalog.TypeWinget,
					Description: "Distributed version control system",
					ID:          "Git.Git",
				},
			},
		},
		"Utilities": {
			"Archive Tools": {
				{
					Name:        "7-Zip",
					Type:        catalog.TypeWinget,
					Description: "File archiver with a high compression ratio",
					ID:          "7zip.7zip",
				},
			},
			"Command Line": {
				{
					Name:        "ripgrep",
					Type:        catalog.TypeGitHub,
					Description: "Recursive line-oriented search tool",
					Repo:        "BurntSushi/ripgrep",
				},
			},
		},
	}
}
