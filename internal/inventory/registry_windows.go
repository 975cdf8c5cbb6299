//go:build windows

package inventory

import (
	"golang.org/x/sys/windows/registry"
)

// uninstallKeys are the registry locations Windows installers register
// under: machine-wide 64-bit, machine-wide 32-bit, and per-user.
var uninstallKeys = []struct {
	root registry.Key
	path string
}{
	{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// registryItems reads the uninstall registry. Unreadable keys are skipped;
// the registry is full of permission oddities and partial entries.
func registryItems() ([]Item, error) {
	var items []Item
	var lastErr error

	for _, loc := range uninstallKeys {
		key, err := registry.OpenKey(loc.root, loc.path, registry.READ)
		if err != nil {
			lastErr = err
			continue
		}

		names, err := key.ReadSubKeyNames(-1)
		if err != nil {
			key.Close()
			lastErr = err
			continue
		}

		for _, name := range names {
			sub, err := registry.OpenKey(loc.root, loc.path+`\`+name, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			item := readUninstallEntry(sub)
			sub.Close()
			if item.Name != "" {
				items = append(items, item)
			}
		}
		key.Close()
	}

	if len(items) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return items, nil
}

func readUninstallEntry(key registry.Key) Item {
	displayName, _, err := key.GetStringValue("DisplayName")
	if err != nil || displayName == "" {
		return Item{}
	}

	// Entries flagged as system components are servicing artifacts, not
	// user-visible software.
	if sysComp, _, err := key.GetIntegerValue("SystemComponent"); err == nil && sysComp == 1 {
		return Item{}
	}

	version, _, _ := key.GetStringValue("DisplayVersion")
	publisher, _, _ := key.GetStringValue("Publisher")

	return Item{
		Name:      displayName,
		Version:   version,
		Publisher: publisher,
		Source:    SourceRegistry,
	}
}
