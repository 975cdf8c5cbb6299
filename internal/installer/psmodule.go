package installer

import (
	"context"
	"fmt"

	"github.com/appcellar/appcellar/internal/catalog"
)

const powershellExe = "powershell"

// installPSModule installs a PowerShell Gallery module for the current
// user. Install-Module's own result is not trusted: success is confirmed
// by a Get-Module post-check.
func (d *Dispatcher) installPSModule(ctx context.Context, rec catalog.Record) Outcome {
	if _, err := d.runner.LookPath(powershellExe); err != nil {
		return failure(rec, "powershell not available")
	}

	installCmd := fmt.Sprintf(
		"Install-Module -Name %s -Scope CurrentUser -Force -AllowClobber", rec.Module)
	code, out, err := d.runner.Run(ctx, powershellExe,
		"-NoProfile", "-NonInteractive", "-Command", installCmd)
	if err != nil {
		return failure(rec, fmt.Sprintf("running Install-Module: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("Install-Module exited with code %d: %s", code, firstLine(out)))
	}

	checkCmd := fmt.Sprintf(
		"if (Get-Module -ListAvailable -Name %s) { exit 0 } else { exit 1 }", rec.Module)
	code, _, err = d.runner.Run(ctx, powershellExe,
		"-NoProfile", "-NonInteractive", "-Command", checkCmd)
	if err != nil {
		return failure(rec, fmt.Sprintf("verifying module: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("module %s is not resolvable after install", rec.Module))
	}
	return success(rec, fmt.Sprintf("module %s installed and verified", rec.Module))
}
