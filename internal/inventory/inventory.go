// Package inventory enumerates installed software from two origins: the
// Windows uninstall registry and winget's own listing. Records are merged,
// de-duplicated by name, and sorted for display.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/appcellar/appcellar/internal/winget"
)

// Item is one installed-software record.
type Item struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Source    string `json:"source"`
}

// Origin names for the Source field.
const (
	SourceRegistry = "registry"
	SourceWinget   = "winget"
)

// Collect gathers installed software from both origins. A failing winget
// degrades to registry-only results; only a total absence of data is an
// error.
func Collect(ctx context.Context, cli *winget.CLI) ([]Item, error) {
	reg, regErr := registryItems()

	var wg []Item
	rows, wingetErr := cli.ListInstalled(ctx)
	for _, row := range rows {
		wg = append(wg, Item{Name: row.Name, Version: row.Version, Source: SourceWinget})
	}

	merged := merge(reg, wg)
	if len(merged) == 0 {
		if wingetErr != nil {
			return nil, fmt.Errorf("no inventory sources available: %w", wingetErr)
		}
		if regErr != nil {
			return nil, fmt.Errorf("no inventory sources available: %w", regErr)
		}
	}
	return merged, nil
}

// merge combines the two origins, de-duplicating by name. The registry
// record wins on conflict: it carries publisher information winget lacks.
func merge(registry, wingetItems []Item) []Item {
	seen := make(map[string]bool, len(registry))
	out := make([]Item, 0, len(registry)+len(wingetItems))

	for _, item := range registry {
		if item.Name == "" {
			continue
		}
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	for _, item := range wingetItems {
		if item.Name == "" {
			continue
		}
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
