package discovery

import (
	"context"

	"github.com/appcellar/appcellar/internal/winget"
)

// WingetSearcher finds candidates through "winget search".
type WingetSearcher struct {
	CLI *winget.CLI
}

// Search returns one candidate per parsed result row, in winget's own
// order. An absent winget surfaces as an error so the caller can warn and
// degrade to zero results.
func (s *WingetSearcher) Search(ctx context.Context, term string) ([]Candidate, error) {
	rows, err := s.CLI.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, Candidate{
			Name:    row.Name,
			Source:  SourceWinget,
			ID:      row.ID,
			Version: row.Version,
		})
	}
	return candidates, nil
}
