package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/inventory"
	"github.com/appcellar/appcellar/internal/winget"
)

var (
	inventoryJSON     bool
	inventoryUpgrades bool
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List installed software from the registry and winget",
	RunE:  runInventory,
}

func init() {
	inventoryCmd.Flags().BoolVar(&inventoryJSON, "json", false, "Output in JSON format")
	inventoryCmd.Flags().BoolVar(&inventoryUpgrades, "upgrades", false, "Show only packages with a newer version available")
	rootCmd.AddCommand(inventoryCmd)
}

func runInventory(cmd *cobra.Command, args []string) error {
	cli := winget.New()

	if inventoryUpgrades {
		return printUpgrades(cmd, cli)
	}

	items, err := inventory.Collect(cmd.Context(), cli)
	if err != nil {
		return err
	}

	if inventoryJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tPUBLISHER\tSOURCE")
	for _, item := range items {
		version := item.Version
		if version == "" {
			version = "-"
		}
		publisher := item.Publisher
		if publisher == "" {
			publisher = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Name, version, publisher, item.Source)
	}
	return w.Flush()
}

func printUpgrades(cmd *cobra.Command, cli *winget.CLI) error {
	ups, err := inventory.Upgrades(cmd.Context(), cli)
	if err != nil {
		return err
	}

	if inventoryJSON {
		data, err := json.MarshalIndent(ups, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if len(ups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Everything is up to date.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tINSTALLED\tAVAILABLE")
	for _, u := range ups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.ID, u.Installed, u.Available)
	}
	return w.Flush()
}
