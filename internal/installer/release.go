package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/github"
)

// assetPreference ranks asset filenames when a record has no explicit
// pattern. Earlier entries win; within one entry the first matching asset
// in release order wins.
var assetPreference = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.msi$`),
	regexp.MustCompile(`(?i)(setup|install)[^\\/]*\.exe$`),
	regexp.MustCompile(`(?i)\.exe$`),
	regexp.MustCompile(`(?i)(win(dows)?|x64|amd64)[^\\/]*\.zip$`),
	regexp.MustCompile(`(?i)\.zip$`),
}

// installGitHubRelease installs from the latest release of a repository:
// pick an asset, download it, then dispatch on its extension.
func (d *Dispatcher) installGitHubRelease(ctx context.Context, rec catalog.Record) Outcome {
	rel, err := d.releases.LatestRelease(ctx, rec.Repo)
	if err != nil {
		return failure(rec, fmt.Sprintf("fetching release: %v", err))
	}
	if len(rel.Assets) == 0 {
		return failure(rec, "no release assets found")
	}

	asset, err := selectAsset(rel.Assets, rec.AssetPattern)
	if err != nil {
		return failure(rec, err.Error())
	}

	path, err := d.downloadTemp(ctx, rec.Name, asset.DownloadURL)
	if err != nil {
		return failure(rec, fmt.Sprintf("downloading %s: %v", asset.Name, err))
	}
	defer os.Remove(path)

	var out Outcome
	switch ext := strings.ToLower(filepath.Ext(asset.Name)); ext {
	case ".msi":
		out = d.runMSI(ctx, rec, path, nil)
	case ".exe":
		out = d.runEXE(ctx, rec, path, nil)
	case ".zip":
		out = d.installZip(ctx, rec, path)
	default:
		return failure(rec, fmt.Sprintf("unsupported asset type %s", ext))
	}

	if out.Success && rec.PostInstall != "" {
		if err := d.runPostInstall(ctx, rec); err != nil {
			// A failed hook does not flip a successful install.
			d.log.Warnf("post-install hook for %s failed: %v", rec.Name, err)
			out.Message += fmt.Sprintf(" (post-install hook failed: %v)", err)
		}
	}
	return out
}

// selectAsset picks the asset to install. An explicit pattern is
// authoritative; otherwise the preference list decides. When nothing
// matches, the error names the available assets so the user can fix the
// record.
func selectAsset(assets []github.Asset, pattern string) (github.Asset, error) {
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return github.Asset{}, fmt.Errorf("invalid asset pattern %q: %w", pattern, err)
		}
		for _, a := range assets {
			if re.MatchString(a.Name) {
				return a, nil
			}
		}
		return github.Asset{}, fmt.Errorf("no suitable asset found for pattern %q; available: %s",
			pattern, assetNames(assets))
	}

	for _, re := range assetPreference {
		for _, a := range assets {
			if re.MatchString(a.Name) {
				return a, nil
			}
		}
	}
	return github.Asset{}, fmt.Errorf("no suitable asset found; available: %s", assetNames(assets))
}

func assetNames(assets []github.Asset) string {
	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// installZip extracts the archive into the record's install path (or the
// default install directory). An existing directory is never silently
// replaced: the user must confirm its removal first.
func (d *Dispatcher) installZip(ctx context.Context, rec catalog.Record, archive string) Outcome {
	dir := rec.InstallPath
	if dir == "" {
		dir = filepath.Join(d.installDir, sanitizeFileName(rec.Name))
	}

	if _, err := os.Stat(dir); err == nil {
		prompt := fmt.Sprintf("%s already exists. Remove it and install fresh?", dir)
		if d.confirm == nil || !d.confirm(prompt) {
			return failure(rec, fmt.Sprintf("install directory %s exists; not overwritten", dir))
		}
		if err := os.RemoveAll(dir); err != nil {
			return failure(rec, fmt.Sprintf("removing %s: %v", dir, err))
		}
	}

	if err := extractZip(archive, dir); err != nil {
		return failure(rec, fmt.Sprintf("extracting archive: %v", err))
	}

	if exe := findFirstExecutable(dir); exe != "" {
		if err := d.createDesktopShortcut(ctx, exe, rec.Name); err != nil {
			d.log.Warnf("creating shortcut for %s failed: %v", rec.Name, err)
		}
	}
	return success(rec, fmt.Sprintf("extracted to %s", dir))
}

// runPostInstall executes the record's post-install hook through
// powershell, best-effort.
func (d *Dispatcher) runPostInstall(ctx context.Context, rec catalog.Record) error {
	code, out, err := d.runner.Run(ctx, powershellExe,
		"-NoProfile", "-NonInteractive", "-Command", rec.PostInstall)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("hook exited with code %d: %s", code, firstLine(out))
	}
	return nil
}
