package installer

import (
	"context"
	"fmt"

	"github.com/appcellar/appcellar/internal/catalog"
)

const wingetExe = "winget"

// installWinget installs by winget package identifier. The precondition
// check short-circuits before any process call: with no winget there is
// nothing to attempt.
func (d *Dispatcher) installWinget(ctx context.Context, rec catalog.Record) Outcome {
	if _, err := d.runner.LookPath(wingetExe); err != nil {
		return failure(rec, "package manager not available")
	}

	code, _, err := d.runner.Run(ctx, wingetExe, "install",
		"--id", rec.ID, "-e", "--silent",
		"--accept-package-agreements", "--accept-source-agreements")
	if err != nil {
		return failure(rec, fmt.Sprintf("running winget: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("winget install exited with code %d", code))
	}
	return success(rec, fmt.Sprintf("installed %s via winget", rec.ID))
}
