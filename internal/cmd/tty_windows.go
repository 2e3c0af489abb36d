//go:build windows

package cmd

// requireTTY is a no-op on Windows; Bubble Tea handles the console probe
// itself.
func requireTTY() error {
	return nil
}
