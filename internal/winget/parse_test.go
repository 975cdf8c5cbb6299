package winget

import (
	"context"
	"fmt"
	"testing"
)

// Captured from a real "winget search vscode" session (trimmed).
const searchOutput = `Name                                        Id                              Version      Source
-------------------------------------------------------------------------------------------------
Visual Studio Code                          Microsoft.VisualStudioCode      1.92.2       winget
Visual Studio Code Insiders                 Microsoft.VisualStudioCode.Insiders  1.93.0  winget
VSCodium                                    VSCodium.VSCodium               1.92.2.24228 winget
`

const listOutput = `Name                 Id                        Version       Source
---------------------------------------------------------------------
7-Zip 24.08 (x64)    7zip.7zip                 24.08         winget
Git                  Git.Git                   2.46.0        winget
Microsoft Edge       Microsoft.Edge            128.0.2739.42
`

const upgradeOutput = `Name        Id          Version   Available   Source
-----------------------------------------------------
Git         Git.Git     2.45.0    2.46.0      winget
`

func TestParseTableSearch(t *testing.T) {
	rows := ParseTable(searchOutput)
	if len(rows) != 3 {
		t.Fatalf("ParseTable() returned %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.Name != "Visual Studio Code" {
		t.Errorf("Name = %q, want multi-word name preserved", first.Name)
	}
	if first.ID != "Microsoft.VisualStudioCode" {
		t.Errorf("ID = %q", first.ID)
	}
	if first.Version != "1.92.2" {
		t.Errorf("Version = %q", first.Version)
	}
	if first.Source != "winget" {
		t.Errorf("Source = %q", first.Source)
	}
}

func TestParseTableThreeColumnRow(t *testing.T) {
	rows := ParseTable(listOutput)
	if len(rows) != 3 {
		t.Fatalf("ParseTable() returned %d rows, want 3", len(rows))
	}
	// Edge has no source column; still a valid 3-column row.
	edge := rows[2]
	if edge.Name != "Microsoft Edge" || edge.Source != "" {
		t.Errorf("row = %+v, want Microsoft Edge with empty source", edge)
	}
}

func TestParseTableUpgradeColumns(t *testing.T) {
	rows := ParseTable(upgradeOutput)
	if len(rows) != 1 {
		t.Fatalf("ParseTable() returned %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Version != "2.45.0" || r.Available != "2.46.0" || r.Source != "winget" {
		t.Errorf("row = %+v", r)
	}
}

func TestParseTableDiscardsMalformedLines(t *testing.T) {
	output := `Name       Id         Version
------------------------------
Good Tool  Good.Tool  1.0.0
brokenlinewithnoseparators

Odd Name With Only Single Spaces And No Columns 1.0
Second     Second.Id  3.1.4
`
	rows := ParseTable(output)
	if len(rows) != 2 {
		t.Fatalf("ParseTable() returned %d rows, want 2 (malformed discarded), got %+v", len(rows), rows)
	}
	if rows[0].Name != "Good Tool" || rows[1].Name != "Second" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseTableNoSeparator(t *testing.T) {
	if rows := ParseTable("No packages found matching input criteria.\n"); rows != nil {
		t.Errorf("ParseTable() = %v, want nil for output without a table", rows)
	}
}

func TestParseTableProgressNoise(t *testing.T) {
	noisy := "\r  -\r  \\\r" + searchOutput
	rows := ParseTable(noisy)
	if len(rows) != 3 {
		t.Errorf("ParseTable() with progress noise returned %d rows, want 3", len(rows))
	}
}

// fakeRunner scripts winget invocations for CLI-level tests.
type fakeRunner struct {
	available bool
	output    string
	err       error
	calls     [][]string
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.available {
		return `C:\winget.exe`, nil
	}
	return "", fmt.Errorf("%s not found", file)
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func TestSearchUnavailable(t *testing.T) {
	c := NewWithRunner(&fakeRunner{available: false})
	if _, err := c.Search(context.Background(), "git"); err == nil {
		t.Fatal("Search() without winget should fail")
	}
}

func TestSearchNoMatchesExitCode(t *testing.T) {
	// winget exits nonzero on empty result sets; that is zero rows, not
	// an error.
	c := NewWithRunner(&fakeRunner{
		available: true,
		output:    "No package found matching input criteria.\n",
		err:       fmt.Errorf("exit status 1"),
	})
	rows, err := c.Search(context.Background(), "doesnotexist123")
	if err != nil {
		t.Fatalf("Search() = %v, want nil error for no matches", err)
	}
	if len(rows) != 0 {
		t.Errorf("Search() returned %d rows, want 0", len(rows))
	}
}

func TestShowResolvableID(t *testing.T) {
	r := &fakeRunner{available: true, output: "Found Git [Git.Git]\n"}
	c := NewWithRunner(r)
	if err := c.Show(context.Background(), "Git.Git"); err != nil {
		t.Fatalf("Show() = %v, want nil for a resolvable id", err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("winget invoked %d times, want 1", len(r.calls))
	}
	call := r.calls[0]
	if call[1] != "show" || call[2] != "--id" || call[3] != "Git.Git" || call[4] != "-e" {
		t.Errorf("Show() args = %v", call)
	}
}

func TestShowUnresolvableID(t *testing.T) {
	c := NewWithRunner(&fakeRunner{
		available: true,
		output:    "No package found matching input criteria.\n",
		err:       fmt.Errorf("exit status 1"),
	})
	if err := c.Show(context.Background(), "No.Such.Package"); err == nil {
		t.Fatal("Show() should surface a nonzero exit for an unknown id")
	}
}

func TestListUpgradesFiltersRows(t *testing.T) {
	c := NewWithRunner(&fakeRunner{available: true, output: upgradeOutput})
	rows, err := c.ListUpgrades(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Available != "2.46.0" {
		t.Errorf("ListUpgrades() = %+v", rows)
	}
}
