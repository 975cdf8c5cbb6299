package installer

import (
	"context"
	"fmt"
	"strings"
)

// createDesktopShortcut drops a .lnk on the user's desktop pointing at
// target. Shortcuts are a COM affair; a powershell one-liner keeps this
// dependency-free.
func (d *Dispatcher) createDesktopShortcut(ctx context.Context, target, name string) error {
	// Single quotes in PowerShell strings are escaped by doubling.
	escName := strings.ReplaceAll(name, "'", "''")
	escTarget := strings.ReplaceAll(target, "'", "''")
	script := fmt.Sprintf(
		"$s = (New-Object -ComObject WScript.Shell).CreateShortcut("+
			"[IO.Path]::Combine([Environment]::GetFolderPath('Desktop'), '%s.lnk')); "+
			"$s.TargetPath = '%s'; $s.Save()",
		escName, escTarget)

	code, out, err := d.runner.Run(ctx, powershellExe,
		"-NoProfile", "-NonInteractive", "-Command", script)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("shortcut creation exited with code %d: %s", code, firstLine(out))
	}
	return nil
}
