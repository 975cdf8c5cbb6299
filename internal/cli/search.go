package cli

import (
	"encoding/json"
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/appcellar/appcellar/internal/discovery"
	"github.com/appcellar/appcellar/internal/winget"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search winget and GitHub for installable software",
	Long: `Search queries winget and the GitHub repository search concurrently and
prints a unified result list. GitHub repositories only appear when their
latest release carries a downloadable asset.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

// searchEntry is one search result for display.
type searchEntry struct {
	Source      string `json:"source"`
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Version     string `json:"version,omitempty"`
	Repo        string `json:"repo,omitempty"`
	Stars       int    `json:"stars,omitempty"`
	Description string `json:"description,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]
	ctx := cmd.Context()

	sources := []discovery.Searcher{
		&discovery.WingetSearcher{CLI: winget.New()},
		&discovery.GitHubSearcher{Client: newGitHubClient(), Log: log.Default()},
	}

	results := make([][]discovery.Candidate, len(sources))
	errs := make([]error, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src discovery.Searcher) {
			defer wg.Done()
			results[i], errs[i] = src.Search(ctx, term)
		}(i, src)
	}
	wg.Wait()

	var entries []searchEntry
	for i := range results {
		if errs[i] != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: a search source failed: %v\n", errs[i])
			continue
		}
		for _, c := range results[i] {
			entries = append(entries, searchEntry{
				Source:      string(c.Source),
				Name:        c.Name,
				ID:          c.ID,
				Version:     c.Version,
				Repo:        c.Repo,
				Stars:       c.Stars,
				Description: c.Description,
			})
		}
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results found matching %q\n", term)
		return nil
	}

	if searchJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tNAME\tDETAIL\tDESCRIPTION")
	for _, e := range entries {
		detail := e.ID
		if e.Version != "" {
			detail += " " + e.Version
		}
		if e.Repo != "" {
			detail = fmt.Sprintf("%s (%d stars)", e.Repo, e.Stars)
		}
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Source, e.Name, detail, desc)
	}
	return w.Flush()
}
