package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appcellar/appcellar/internal/catalog"
)

func TestStarterDocumentIsValid(t *testing.T) {
	store, err := catalog.New(starterDocument())
	if err != nil {
		t.Fatalf("starter document should pass validation: %v", err)
	}
	if store.Len() != 5 {
		t.Errorf("starter document has %d records, want 5", store.Len())
	}
}

func TestCatalogValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	store, err := catalog.New(starterDocument())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(path); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"catalog", "validate", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Catalog is valid: 5 record(s)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCatalogValidateCommandRejectsBadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	bad := "Development:\n  Editors:\n    - name: Broken\n      type: winget\n      description: missing its id\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"catalog", "validate", path})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected validation error for record missing its id")
	}
}
