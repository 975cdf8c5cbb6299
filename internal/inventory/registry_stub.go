//go:build !windows

package inventory

// registryItems has nothing to read outside Windows; the winget origin
// carries the inventory alone.
func registryItems() ([]Item, error) {
	return nil, nil
}
