// Package discovery finds installable software outside the catalog: winget
// search hits and GitHub repositories with downloadable release assets.
// Each client normalizes its results into Candidates that the merge flow
// can promote into catalog records.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/appcellar/appcellar/internal/catalog"
)

// Source identifies which client produced a candidate.
type Source string

const (
	SourceWinget Source = "winget"
	SourceGitHub Source = "github"
)

// Candidate is a normalized search hit from either source.
type Candidate struct {
	Name        string
	Description string
	Source      Source

	// winget
	ID      string
	Version string

	// github
	Repo  string
	Stars int
}

// Searcher is implemented by both discovery clients.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Candidate, error)
}

// Label renders the candidate for an indexed pick list.
func (c Candidate) Label() string {
	switch c.Source {
	case SourceWinget:
		return fmt.Sprintf("%s (%s %s) [winget]", c.Name, c.ID, c.Version)
	case SourceGitHub:
		return fmt.Sprintf("%s (%s, %d stars) [github]", c.Name, c.Repo, c.Stars)
	}
	return c.Name
}

// ToRecord promotes the candidate into a catalog record, filling the
// type-conditional fields from its source.
func (c Candidate) ToRecord() (catalog.Record, error) {
	desc := strings.TrimSpace(c.Description)

	var rec catalog.Record
	switch c.Source {
	case SourceWinget:
		if desc == "" {
			desc = fmt.Sprintf("winget package %s", c.ID)
		}
		rec = catalog.Record{Name: c.Name, Type: catalog.TypeWinget, Description: desc, ID: c.ID}
	case SourceGitHub:
		if desc == "" {
			desc = fmt.Sprintf("GitHub releases of %s", c.Repo)
		}
		rec = catalog.Record{Name: c.Name, Type: catalog.TypeGitHub, Description: desc, Repo: c.Repo}
	default:
		return catalog.Record{}, fmt.Errorf("candidate %s has unknown source %q", c.Name, c.Source)
	}

	if err := rec.Validate(); err != nil {
		return catalog.Record{}, err
	}
	return rec, nil
}
