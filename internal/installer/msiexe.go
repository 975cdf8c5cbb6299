package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/appcellar/appcellar/internal/catalog"
)

const msiexecExe = "msiexec"

// Backend default arguments for silent installs.
var (
	defaultMSIArgs = []string{"/quiet", "/norestart"}
	defaultEXEArgs = []string{"/S"}
)

// installMSI downloads the package and hands it to msiexec. The temp file
// is removed best-effort whatever happens.
func (d *Dispatcher) installMSI(ctx context.Context, rec catalog.Record) Outcome {
	path, err := d.downloadTemp(ctx, rec.Name, rec.URL)
	if err != nil {
		return failure(rec, fmt.Sprintf("download failed: %v", err))
	}
	defer os.Remove(path)
	return d.runMSI(ctx, rec, path, rec.Args)
}

// installEXE downloads the installer and executes it directly.
func (d *Dispatcher) installEXE(ctx context.Context, rec catalog.Record) Outcome {
	path, err := d.downloadTemp(ctx, rec.Name, rec.URL)
	if err != nil {
		return failure(rec, fmt.Sprintf("download failed: %v", err))
	}
	defer os.Remove(path)
	return d.runEXE(ctx, rec, path, rec.Args)
}

// runMSI invokes msiexec against a local .msi file. Also used by the
// release-archive backend for downloaded .msi assets.
func (d *Dispatcher) runMSI(ctx context.Context, rec catalog.Record, file string, args []string) Outcome {
	if len(args) == 0 {
		args = defaultMSIArgs
	}
	full := append([]string{"/i", file}, args...)

	code, _, err := d.runner.Run(ctx, msiexecExe, full...)
	if err != nil {
		return failure(rec, fmt.Sprintf("running msiexec: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("msiexec exited with code %d", code))
	}
	return success(rec, "MSI installed")
}

// runEXE executes a local installer executable.
func (d *Dispatcher) runEXE(ctx context.Context, rec catalog.Record, file string, args []string) Outcome {
	if len(args) == 0 {
		args = defaultEXEArgs
	}

	code, _, err := d.runner.Run(ctx, file, args...)
	if err != nil {
		return failure(rec, fmt.Sprintf("running installer: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("installer exited with code %d", code))
	}
	return success(rec, "installer completed")
}
