// Package installer routes catalog records to the backend that knows how
// to install them: winget, MSI, EXE, PowerShell Gallery modules, remote
// scripts, or GitHub release archives. Every backend converts its failures
// into an Outcome; nothing propagates past the dispatcher.
package installer

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/github"
)

// defaultPause separates sequential installs so interleaved installer UIs
// and log lines stay attributable to one item.
const defaultPause = 2 * time.Second

// ReleaseClient is the slice of the GitHub client the release backend needs.
type ReleaseClient interface {
	LatestRelease(ctx context.Context, repo string) (*github.Release, error)
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

// Dispatcher installs catalog records.
type Dispatcher struct {
	runner     Runner
	releases   ReleaseClient
	httpClient *http.Client
	log        *log.Logger
	confirm    ConfirmFunc
	installDir string
	tempDir    string
	pause      time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRunner substitutes the process runner (tests).
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

// WithReleaseClient substitutes the GitHub release client.
func WithReleaseClient(c ReleaseClient) Option {
	return func(d *Dispatcher) { d.releases = c }
}

// WithHTTPClient substitutes the client used for file and script
// downloads (tests).
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.httpClient = c }
}

// WithLogger sets the event log sink.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithConfirm sets the confirmation prompt used before batch installs and
// before replacing an existing install directory.
func WithConfirm(f ConfirmFunc) Option {
	return func(d *Dispatcher) { d.confirm = f }
}

// WithInstallDir sets the directory zip archives are extracted under when
// a record has no explicit install path.
func WithInstallDir(dir string) Option {
	return func(d *Dispatcher) { d.installDir = dir }
}

// WithTempDir sets the directory used for downloaded files (tests).
func WithTempDir(dir string) Option {
	return func(d *Dispatcher) { d.tempDir = dir }
}

// WithPause sets the delay between items in a batch.
func WithPause(p time.Duration) Option {
	return func(d *Dispatcher) { d.pause = p }
}

// New creates a Dispatcher with production defaults.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner:     execRunner{},
		releases:   github.NewClient(),
		httpClient: downloadClient(),
		log:        log.Default(),
		installDir: defaultInstallDir(),
		tempDir:    os.TempDir(),
		pause:      defaultPause,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// connectTimeout bounds connection setup and the wait for response
// headers on downloads.
const connectTimeout = 20 * time.Second

// downloadClient bounds dialing, TLS setup, and the wait for response
// headers, while leaving the body transfer itself unbounded so a large
// download can take as long as it needs. A server that stalls before
// sending headers fails once; downloads are never retried.
func downloadClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: connectTimeout,
		},
	}
}

// defaultInstallDir is %LOCALAPPDATA%\Programs\appcellar, falling back to
// a directory under the user's home when LOCALAPPDATA is unset.
func defaultInstallDir() string {
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return filepath.Join(v, "Programs", "appcellar")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "appcellar")
	}
	return filepath.Join(home, "appcellar", "apps")
}

// Install routes one record to its backend and returns the outcome.
func (d *Dispatcher) Install(ctx context.Context, rec catalog.Record) Outcome {
	d.log.Infof("Installing %s (%s)", rec.Name, rec.Type)

	var out Outcome
	switch rec.Type {
	case catalog.TypeWinget:
		out = d.installWinget(ctx, rec)
	case catalog.TypeMSI:
		out = d.installMSI(ctx, rec)
	case catalog.TypeEXE:
		out = d.installEXE(ctx, rec)
	case catalog.TypePSModule:
		out = d.installPSModule(ctx, rec)
	case catalog.TypeScript:
		out = d.installScript(ctx, rec)
	case catalog.TypeGitHub:
		out = d.installGitHubRelease(ctx, rec)
	default:
		out = failure(rec, "unknown installation type")
	}

	if out.Success {
		d.log.Infof("SUCCESS: %s: %s", out.Name, out.Message)
	} else {
		d.log.Errorf("FAILED: %s: %s", out.Name, out.Message)
	}
	return out
}

// InstallAll asks for one up-front confirmation listing every selected
// name, then installs sequentially. One failing item never stops the
// batch; the summary accounts for every attempt.
func (d *Dispatcher) InstallAll(ctx context.Context, recs []catalog.Record) Summary {
	var sum Summary
	if len(recs) == 0 {
		return sum
	}

	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = rec.Name
	}
	prompt := fmt.Sprintf("Install %d item(s): %s?", len(recs), strings.Join(names, ", "))
	if d.confirm != nil && !d.confirm(prompt) {
		d.log.Warnf("SKIPPED: batch of %d item(s) cancelled before start", len(recs))
		sum.Aborted = true
		return sum
	}

	for i, rec := range recs {
		if i > 0 && d.pause > 0 {
			time.Sleep(d.pause)
		}
		sum.record(d.Install(ctx, rec))
	}
	return sum
}
