package discovery

import (
	"context"
	"errors"
	"path"

	"github.com/charmbracelet/log"

	"github.com/appcellar/appcellar/internal/github"
)

const defaultRepoLimit = 5

// GitHubSearcher finds candidates through the repository search API. A
// repository only becomes a candidate if its latest release carries at
// least one downloadable asset; anything else is invisible, not degraded.
type GitHubSearcher struct {
	Client *github.Client
	Limit  int
	Log    *log.Logger
}

// Search returns candidates in popularity order.
func (s *GitHubSearcher) Search(ctx context.Context, term string) ([]Candidate, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = defaultRepoLimit
	}

	repos, err := s.Client.SearchRepositories(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, repo := range repos {
		rel, err := s.Client.LatestRelease(ctx, repo.FullName)
		switch {
		case errors.Is(err, github.ErrNotFound):
			// No releases at all: excluded.
			continue
		case err != nil:
			// Terminal per-candidate failure: skipped, never aborts
			// the whole search.
			s.logf("SKIPPED: %s: %v", repo.FullName, err)
			continue
		case len(rel.Assets) == 0:
			continue
		}

		candidates = append(candidates, Candidate{
			Name:        path.Base(repo.FullName),
			Description: repo.Description,
			Source:      SourceGitHub,
			Repo:        repo.FullName,
			Stars:       repo.Stars,
		})
	}
	return candidates, nil
}

func (s *GitHubSearcher) logf(format string, args ...interface{}) {
	if s.Log != nil {
		s.Log.Warnf(format, args...)
	}
}
