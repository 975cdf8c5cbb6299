// Package winget wraps the winget command-line tool: availability probing,
// search, and installed-package listing. Output parsing lives here so the
// brittle tabular format is handled in exactly one place.
package winget

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const executable = "winget"

// Runner abstracts process execution so the parser-facing methods can be
// tested without a real winget on PATH.
type Runner interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// CLI issues winget commands and parses their tabular output.
type CLI struct {
	runner Runner
}

// New returns a CLI backed by real process execution.
func New() *CLI {
	return &CLI{runner: execRunner{}}
}

// NewWithRunner returns a CLI backed by a custom runner (tests).
func NewWithRunner(r Runner) *CLI {
	return &CLI{runner: r}
}

// Available reports whether winget is resolvable on PATH.
func (c *CLI) Available() bool {
	_, err := c.runner.LookPath(executable)
	return err == nil
}

// Search runs "winget search <term>" and returns the parsed rows.
// An absent winget is an error here; callers degrade it to zero results.
func (c *CLI) Search(ctx context.Context, term string) ([]Row, error) {
	if !c.Available() {
		return nil, fmt.Errorf("winget not found in PATH")
	}
	out, err := c.runner.Output(ctx, executable, "search", term,
		"--accept-source-agreements", "--disable-interactivity")
	if err != nil {
		// winget exits nonzero when a search has no matches; treat
		// output without a table as simply zero rows.
		if rows := ParseTable(out); len(rows) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("winget search failed: %w", err)
	}
	return ParseTable(out), nil
}

// ListInstalled runs "winget list" and returns the parsed rows.
func (c *CLI) ListInstalled(ctx context.Context) ([]Row, error) {
	if !c.Available() {
		return nil, fmt.Errorf("winget not found in PATH")
	}
	out, err := c.runner.Output(ctx, executable, "list",
		"--accept-source-agreements", "--disable-interactivity")
	if err != nil {
		return nil, fmt.Errorf("winget list failed: %w", err)
	}
	return ParseTable(out), nil
}

// ListUpgrades runs "winget upgrade" and returns rows whose Available
// column is populated.
func (c *CLI) ListUpgrades(ctx context.Context) ([]Row, error) {
	if !c.Available() {
		return nil, fmt.Errorf("winget not found in PATH")
	}
	out, err := c.runner.Output(ctx, executable, "upgrade",
		"--accept-source-agreements", "--disable-interactivity")
	if err != nil {
		return nil, fmt.Errorf("winget upgrade failed: %w", err)
	}
	var rows []Row
	for _, r := range ParseTable(out) {
		if r.Available != "" {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// Show runs "winget show --id <id>"; its exit code is the sole signal that
// the identifier exists.
func (c *CLI) Show(ctx context.Context, id string) error {
	if !c.Available() {
		return fmt.Errorf("winget not found in PATH")
	}
	_, err := c.runner.Output(ctx, executable, "show", "--id", id, "-e",
		"--accept-source-agreements", "--disable-interactivity")
	if err != nil {
		return fmt.Errorf("winget show %s: %w", id, err)
	}
	return nil
}

// trimProgressNoise drops the spinner/progress characters winget prefixes
// to its output when not attached to a real console.
func trimProgressNoise(line string) string {
	return strings.TrimLeft(line, "-\\|/ \b\r")
}
