package navigator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/discovery"
)

type fakeSearcher struct {
	candidates []discovery.Candidate
	err        error
	calls      int
}

func (f *fakeSearcher) Search(ctx context.Context, term string) ([]discovery.Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

func toolsDoc() catalog.Document {
	return catalog.Document{
		"Utilities": {
			"CLI": {wingetRec("jq", "jqlang.jq")},
		},
	}
}

func TestSearchEmptyTermCancels(t *testing.T) {
	src := &fakeSearcher{}
	out, _ := runSession(t, Config{
		Catalog:   testStore(t, toolsDoc()),
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{src},
	}, "s\n\nq\n")

	if src.calls != 0 {
		t.Errorf("empty term should not query sources; got %d calls", src.calls)
	}
	if strings.Contains(out, "Results for") {
		t.Errorf("empty term should not render results:\n%s", out)
	}
}

func TestSearchNoResults(t *testing.T) {
	out, _ := runSession(t, Config{
		Catalog:   testStore(t, toolsDoc()),
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{&fakeSearcher{}, &fakeSearcher{}},
	}, "s\nnothing\nq\n")

	if !strings.Contains(out, "No results found.") {
		t.Errorf("output missing empty-result notice:\n%s", out)
	}
	if strings.Contains(out, "Category") {
		t.Errorf("empty results should skip the destination prompts:\n%s", out)
	}
}

func TestSearchMergeAndPersist(t *testing.T) {
	wingetSrc := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "ripgrep", Source: discovery.SourceWinget, ID: "BurntSushi.ripgrep.MSVC", Version: "14.1.0"},
	}}
	githubSrc := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "fzf", Source: discovery.SourceGitHub, Repo: "junegunn/fzf", Stars: 60000},
	}}
	store := testStore(t, toolsDoc())
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	out, _ := runSession(t, Config{
		Catalog:     store,
		CatalogPath: path,
		Installer:   &fakeInstaller{},
		Sources:     []discovery.Searcher{wingetSrc, githubSrc},
	}, "s\nfuzzy\n1,2\n1\n1\ny\nq\n")

	if !strings.Contains(out, "ripgrep (BurntSushi.ripgrep.MSVC 14.1.0) [winget]") {
		t.Errorf("winget candidate missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "fzf (junegunn/fzf, 60000 stars) [github]") {
		t.Errorf("github candidate missing:\n%s", out)
	}
	if !strings.Contains(out, "Added 2 item(s) to Utilities / CLI.") {
		t.Errorf("output missing merge confirmation:\n%s", out)
	}

	recs := store.Records("Utilities", "CLI")
	if len(recs) != 3 {
		t.Fatalf("got %d records after merge, want 3", len(recs))
	}
	if recs[1].Name != "ripgrep" || recs[2].Name != "fzf" {
		t.Errorf("appended records out of order: %s, %s", recs[1].Name, recs[2].Name)
	}
	if recs[2].Repo != "junegunn/fzf" {
		t.Errorf("github record lost its repo: %+v", recs[2])
	}

	reloaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("reloading saved catalog: %v", err)
	}
	if reloaded.Len() != 3 {
		t.Errorf("reloaded catalog has %d records, want 3", reloaded.Len())
	}
}

func TestSearchDeclinedSaveKeepsMemoryOnly(t *testing.T) {
	src := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "fd", Source: discovery.SourceWinget, ID: "sharkdp.fd", Version: "10.2.0"},
	}}
	store := testStore(t, toolsDoc())
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	_, _ = runSession(t, Config{
		Catalog:     store,
		CatalogPath: path,
		Installer:   &fakeInstaller{},
		Sources:     []discovery.Searcher{src},
	}, "s\nfd\n1\n1\n1\nn\nq\n")

	if len(store.Records("Utilities", "CLI")) != 2 {
		t.Errorf("record should be appended in memory")
	}
	if _, err := catalog.Load(path); err == nil {
		t.Errorf("declined save should leave no file at %s", path)
	}
}

func TestSearchMergeVerifiesWingetID(t *testing.T) {
	src := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "delta", Source: discovery.SourceWinget, ID: "dandavison.delta", Version: "0.18.2"},
		{Name: "ghost", Source: discovery.SourceWinget, ID: "No.Such.Package", Version: "1.0.0"},
	}}
	store := testStore(t, toolsDoc())

	out, _ := runSession(t, Config{
		Catalog:   store,
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{src},
		VerifyWingetID: func(ctx context.Context, id string) error {
			if id == "No.Such.Package" {
				return errors.New("winget show No.Such.Package: exit status 1")
			}
			return nil
		},
	}, "s\ndelta\n1,2\n1\n1\nn\nq\n")

	if !strings.Contains(out, "Skipping ghost: winget show No.Such.Package") {
		t.Errorf("unresolvable identifier should be skipped:\n%s", out)
	}
	recs := store.Records("Utilities", "CLI")
	if len(recs) != 2 {
		t.Fatalf("got %d records after merge, want 2 (one verified, one skipped)", len(recs))
	}
	if recs[1].ID != "dandavison.delta" {
		t.Errorf("appended record = %+v, want the verified candidate", recs[1])
	}
	if !strings.Contains(out, "Added 1 item(s) to Utilities / CLI.") {
		t.Errorf("output missing merge confirmation:\n%s", out)
	}
}

func TestSearchSourceFailureDegrades(t *testing.T) {
	broken := &fakeSearcher{err: errors.New("rate limited")}
	working := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "bat", Source: discovery.SourceWinget, ID: "sharkdp.bat", Version: "0.24.0"},
	}}

	out, _ := runSession(t, Config{
		Catalog:   testStore(t, toolsDoc()),
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{broken, working},
	}, "s\nbat\nb\nq\n")

	if !strings.Contains(out, "Warning: a search source failed: rate limited") {
		t.Errorf("output missing degradation warning:\n%s", out)
	}
	if !strings.Contains(out, "bat (sharkdp.bat 0.24.0) [winget]") {
		t.Errorf("surviving source's results should still render:\n%s", out)
	}
}

func TestSearchDestinationReprompts(t *testing.T) {
	src := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "eza", Source: discovery.SourceWinget, ID: "eza-community.eza", Version: "0.19.0"},
	}}
	store := testStore(t, toolsDoc())

	out, _ := runSession(t, Config{
		Catalog:   store,
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{src},
	}, "s\neza\n1\n9\nx\n1\n1\nn\nq\n")

	if !strings.Contains(out, "Pick one category between 1 and 1.") {
		t.Errorf("out-of-range category should re-prompt:\n%s", out)
	}
	if len(store.Records("Utilities", "CLI")) != 2 {
		t.Errorf("record should be appended after valid destination pick")
	}
}

func TestSearchOutOfRangePickDropped(t *testing.T) {
	src := &fakeSearcher{candidates: []discovery.Candidate{
		{Name: "zoxide", Source: discovery.SourceWinget, ID: "ajeetdsouza.zoxide", Version: "0.9.6"},
	}}
	store := testStore(t, toolsDoc())

	out, _ := runSession(t, Config{
		Catalog:   store,
		Installer: &fakeInstaller{},
		Sources:   []discovery.Searcher{src},
	}, "s\nzoxide\n5\nq\n")

	if !strings.Contains(out, "No valid selections; indices run from 1 to 1.") {
		t.Errorf("output missing invalid-selection notice:\n%s", out)
	}
	if len(store.Records("Utilities", "CLI")) != 1 {
		t.Errorf("nothing should be appended for an out-of-range pick")
	}
}
