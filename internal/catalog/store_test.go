package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `Development:
  IDEs & Editors:
    - name: Visual Studio Code
      type: winget
      description: Code editor from Microsoft
      id: Microsoft.VisualStudioCode
    - name: Neovim
      type: winget
      description: Hyperextensible Vim-based editor
      id: Neovim.Neovim
  Version Control:
    - name: Git
      type: winget
      description: Distributed version control
      id: Git.Git
Utilities:
  Archivers:
    - name: 7-Zip
      type: msi
      description: File archiver
      url: https://www.7-zip.org/a/7z2408-x64.msi
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cats := s.Categories()
	want := []string{"Development", "Utilities"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}

	subs := s.Subcategories("Development")
	if len(subs) != 2 || subs[0] != "IDEs & Editors" || subs[1] != "Version Control" {
		t.Errorf("Subcategories(Development) = %v", subs)
	}

	recs := s.Records("Development", "IDEs & Editors")
	if len(recs) != 2 {
		t.Fatalf("Records() returned %d records, want 2", len(recs))
	}
	// Insertion order, not alphabetical: Visual Studio Code before Neovim.
	if recs[0].Name != "Visual Studio Code" || recs[1].Name != "Neovim" {
		t.Errorf("record order = [%s, %s], want insertion order preserved", recs[0].Name, recs[1].Name)
	}

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() on missing file should fail")
	}
}

func TestLoadInvalidRecordNamesPath(t *testing.T) {
	bad := `Development:
  IDEs & Editors:
    - name: Broken Entry
      type: winget
      description: Missing its id
`
	_, err := Load(writeCatalog(t, bad))
	if err == nil {
		t.Fatal("Load() should reject a winget record without an id")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Development") || !strings.Contains(msg, "IDEs & Editors") {
		t.Errorf("error %q should name the category path", msg)
	}
}

func TestLoadUnparseableDocument(t *testing.T) {
	_, err := Load(writeCatalog(t, "::\n  - not yaml: ["))
	if err == nil {
		t.Fatal("Load() should fail on unparseable YAML")
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	dup := `Development:
  Tools:
    - name: Git
      type: winget
      description: d
      id: Git.Git
    - name: git
      type: winget
      description: d
      id: Git.Git
`
	_, err := Load(writeCatalog(t, dup))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("Load() = %v, want duplicate-name error", err)
	}
}

func TestAppend(t *testing.T) {
	s, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	rec := Record{Name: "ripgrep", Type: TypeGitHub, Description: "Fast grep", Repo: "BurntSushi/ripgrep"}
	if err := s.Append("Development", "Version Control", rec); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	recs := s.Records("Development", "Version Control")
	if len(recs) != 2 || recs[1].Name != "ripgrep" {
		t.Errorf("appended record should be last in list, got %v", recs)
	}

	// Duplicate names within a subcategory are rejected, case-insensitively.
	if err := s.Append("Development", "Version Control", Record{
		Name: "RIPGREP", Type: TypeGitHub, Description: "d", Repo: "a/b",
	}); err == nil {
		t.Error("Append() should reject a duplicate name")
	}

	// Appending to a new category creates it.
	if err := s.Append("Media", "Players", Record{
		Name: "VLC", Type: TypeWinget, Description: "Media player", ID: "VideoLAN.VLC",
	}); err != nil {
		t.Fatalf("Append() to new category: %v", err)
	}
	if got := s.Categories(); len(got) != 3 {
		t.Errorf("Categories() = %v, want Media included", got)
	}
}

func TestAppendInvalidRecord(t *testing.T) {
	s, _ := New(Document{})
	err := s.Append("Cat", "Sub", Record{Name: "X", Type: TypeWinget, Description: "d"})
	if err == nil {
		t.Fatal("Append() should validate the record")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	appended := Record{
		Name:         "Tool",
		Type:         TypeGitHub,
		Description:  "Release tool",
		Repo:         "owner/tool",
		AssetPattern: "win64",
		InstallPath:  `C:\Tools\tool`,
	}
	if err := s.Append("Utilities", "Archivers", appended); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "saved.yaml")
	if err := s.Save(out); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("reloading saved catalog: %v", err)
	}

	got, ok := reloaded.Find("Utilities", "Archivers", "Tool")
	if !ok {
		t.Fatal("appended record missing after round trip")
	}
	if got.Type != appended.Type || got.Repo != appended.Repo ||
		got.AssetPattern != appended.AssetPattern || got.InstallPath != appended.InstallPath {
		t.Errorf("round-tripped record = %+v, want %+v", got, appended)
	}

	// Order within the list survives the round trip.
	recs := reloaded.Records("Development", "IDEs & Editors")
	if len(recs) != 2 || recs[0].Name != "Visual Studio Code" {
		t.Errorf("record order changed after round trip: %v", recs)
	}
}

func TestValidateDocumentSchema(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"valid", sampleCatalog, true},
		{"record missing type", "A:\n  B:\n    - name: x\n      description: d\n", false},
		{"bad type enum", "A:\n  B:\n    - name: x\n      type: flatpak\n      description: d\n", false},
		{"github without repo", "A:\n  B:\n    - name: x\n      type: github\n      description: d\n", false},
		{"repo wrong shape", "A:\n  B:\n    - name: x\n      type: github\n      description: d\n      repo: nodash\n", false},
		{"unknown field", "A:\n  B:\n    - name: x\n      type: winget\n      description: d\n      id: a.b\n      extra: nope\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateDocument([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ValidateDocument() error: %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v; issues:\n%s", result.Valid, tt.valid, result.String())
			}
		})
	}
}
