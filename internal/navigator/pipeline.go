package navigator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/discovery"
)

// searchAndMerge runs the add-software flow: query every discovery source
// concurrently, show a unified indexed list, and append the picked
// candidates to the catalog under a user-chosen category and subcategory.
func (s *Session) searchAndMerge(ctx context.Context) {
	line, ok := s.readLine("Search term (empty to cancel): ")
	if !ok {
		return
	}
	term := strings.TrimSpace(line)
	if term == "" {
		return
	}

	candidates := s.searchAll(ctx, term)
	if len(candidates) == 0 {
		fmt.Fprintln(s.out, "No results found.")
		return
	}

	fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("Results for %q", term)))
	for i, c := range candidates {
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, c.Label())
	}

	picked := s.pickCandidates(candidates)
	if len(picked) == 0 {
		return
	}

	category, ok := s.pickFromList("Category", s.cfg.Catalog.Categories())
	if !ok {
		return
	}
	subcategory, ok := s.pickFromList("Subcategory", s.cfg.Catalog.Subcategories(category))
	if !ok {
		return
	}

	added := 0
	for _, c := range picked {
		rec, err := c.ToRecord()
		if err != nil {
			s.errorf("Skipping %s: %v", c.Name, err)
			continue
		}
		if rec.Type == catalog.TypeWinget && s.cfg.VerifyWingetID != nil {
			if err := s.cfg.VerifyWingetID(ctx, rec.ID); err != nil {
				s.errorf("Skipping %s: %v", c.Name, err)
				continue
			}
		}
		if err := s.cfg.Catalog.Append(category, subcategory, rec); err != nil {
			s.errorf("Skipping %s: %v", c.Name, err)
			continue
		}
		s.cfg.Log.Info("added to catalog", "name", rec.Name, "type", rec.Type,
			"category", category, "subcategory", subcategory)
		added++
	}
	if added == 0 {
		return
	}
	fmt.Fprintf(s.out, "Added %d item(s) to %s / %s.\n", added, category, subcategory)

	if s.Confirm("Save catalog to disk now?") {
		if err := s.cfg.Catalog.Save(s.cfg.CatalogPath); err != nil {
			s.errorf("Save failed: %v", err)
			return
		}
		fmt.Fprintf(s.out, "Catalog saved to %s\n", s.cfg.CatalogPath)
	}
}

// searchAll fans the term out to every source and joins the results in
// source order. A failing source degrades to a warning; the others still
// contribute.
func (s *Session) searchAll(ctx context.Context, term string) []discovery.Candidate {
	results := make([][]discovery.Candidate, len(s.cfg.Sources))
	errs := make([]error, len(s.cfg.Sources))

	var wg sync.WaitGroup
	for i, src := range s.cfg.Sources {
		wg.Add(1)
		go func(i int, src discovery.Searcher) {
			defer wg.Done()
			results[i], errs[i] = src.Search(ctx, term)
		}(i, src)
	}
	wg.Wait()

	var combined []discovery.Candidate
	for i := range results {
		if errs[i] != nil {
			s.cfg.Log.Warn("search source failed", "err", errs[i])
			fmt.Fprintln(s.out, warnStyle.Render(fmt.Sprintf("Warning: a search source failed: %v", errs[i])))
			continue
		}
		combined = append(combined, results[i]...)
	}
	return combined
}

// pickCandidates reads an index selection against the result list.
// Out-of-range indices are dropped; back or empty input cancels.
func (s *Session) pickCandidates(candidates []discovery.Candidate) []discovery.Candidate {
	line, ok := s.readLine("Select results to add (e.g. 1,3) or [b]ack: ")
	if !ok {
		return nil
	}

	cmd := Parse(line)
	switch cmd.Kind {
	case KindIndices:
	case KindBack, KindQuit:
		if cmd.Kind == KindQuit {
			s.done = true
		}
		return nil
	default:
		s.errorf("Nothing selected.")
		return nil
	}

	seen := make(map[int]bool, len(cmd.Indices))
	var picked []discovery.Candidate
	for _, idx := range cmd.Indices {
		if idx < 1 || idx > len(candidates) || seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, candidates[idx-1])
	}
	if len(picked) == 0 {
		s.errorf("No valid selections; indices run from 1 to %d.", len(candidates))
	}
	return picked
}

// pickFromList prompts until the user picks one entry by number. Invalid
// input re-prompts; back or end of input cancels.
func (s *Session) pickFromList(what string, options []string) (string, bool) {
	if len(options) == 0 {
		s.errorf("%s list is empty; nothing to add under.", what)
		return "", false
	}

	fmt.Fprintln(s.out, titleStyle.Render(what))
	for i, opt := range options {
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, opt)
	}

	for {
		line, ok := s.readLine(fmt.Sprintf("%s number: ", what))
		if !ok {
			return "", false
		}
		cmd := Parse(line)
		switch cmd.Kind {
		case KindBack:
			return "", false
		case KindQuit:
			s.done = true
			return "", false
		case KindIndices:
			if len(cmd.Indices) == 1 && cmd.Indices[0] <= len(options) {
				return options[cmd.Indices[0]-1], true
			}
		}
		s.errorf("Pick one %s between 1 and %d.", strings.ToLower(what), len(options))
	}
}
