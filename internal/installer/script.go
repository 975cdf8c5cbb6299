package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appcellar/appcellar/internal/catalog"
)

// installScript fetches a PowerShell script, writes it to a temp file, and
// runs it with the record's arguments. This backend has no exit-code
// contract of its own beyond powershell's; any failure along the way is
// the outcome message.
func (d *Dispatcher) installScript(ctx context.Context, rec catalog.Record) Outcome {
	if _, err := d.runner.LookPath(powershellExe); err != nil {
		return failure(rec, "powershell not available")
	}

	body, err := d.fetchText(ctx, rec.URL)
	if err != nil {
		return failure(rec, fmt.Sprintf("fetching script: %v", err))
	}

	scriptPath := filepath.Join(d.tempDir, sanitizeFileName(rec.Name)+".ps1")
	if err := os.WriteFile(scriptPath, []byte(body), 0600); err != nil {
		return failure(rec, fmt.Sprintf("writing script: %v", err))
	}
	defer os.Remove(scriptPath)

	args := append([]string{
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass",
		"-File", scriptPath,
	}, rec.Args...)

	code, out, err := d.runner.Run(ctx, powershellExe, args...)
	if err != nil {
		return failure(rec, fmt.Sprintf("running script: %v", err))
	}
	if code != 0 {
		return failure(rec, fmt.Sprintf("script exited with code %d: %s", code, firstLine(out)))
	}
	return success(rec, "script completed")
}

// firstLine trims process output down to its first non-empty line for
// one-line failure messages.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
