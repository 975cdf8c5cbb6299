package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/appcellar/appcellar/internal/winget"
)

// Upgrade is an installed package with a newer version available.
type Upgrade struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Installed string `json:"installed"`
	Available string `json:"available"`
}

// Upgrades lists packages winget can upgrade, filtered down to rows whose
// available version actually exceeds the installed one.
func Upgrades(ctx context.Context, cli *winget.CLI) ([]Upgrade, error) {
	rows, err := cli.ListUpgrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing upgrades: %w", err)
	}

	var ups []Upgrade
	for _, row := range rows {
		if !NewerAvailable(row.Version, row.Available) {
			continue
		}
		ups = append(ups, Upgrade{
			Name:      row.Name,
			ID:        row.ID,
			Installed: row.Version,
			Available: row.Available,
		})
	}
	return ups, nil
}

// NewerAvailable reports whether available is newer than installed.
// Versions that parse as semver compare semantically; anything else falls
// back to plain string inequality, which is the best winget's loose
// version strings allow.
func NewerAvailable(installed, available string) bool {
	installed = strings.TrimSpace(installed)
	available = strings.TrimSpace(available)
	if available == "" || installed == available {
		return false
	}

	iv, ierr := semver.NewVersion(installed)
	av, aerr := semver.NewVersion(available)
	if ierr == nil && aerr == nil {
		return av.GreaterThan(iv)
	}
	return true
}
