// Package navigator runs the interactive browse session: a three-level
// category hierarchy with paginated software lists, plus the inventory,
// export, and search-and-merge side flows reachable from the main menu.
package navigator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/appcellar/appcellar/internal/catalog"
	"github.com/appcellar/appcellar/internal/discovery"
	"github.com/appcellar/appcellar/internal/export"
	"github.com/appcellar/appcellar/internal/installer"
	"github.com/appcellar/appcellar/internal/inventory"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Installer runs batches of install requests. *installer.Dispatcher is the
// production implementation.
type Installer interface {
	InstallAll(ctx context.Context, recs []catalog.Record) installer.Summary
}

// InventoryFunc produces the installed-software listing.
type InventoryFunc func(ctx context.Context) ([]inventory.Item, error)

// Config assembles a Session's collaborators.
type Config struct {
	Catalog     *catalog.Store
	CatalogPath string
	Installer   Installer
	// Sources are queried concurrently by the search flow; result order
	// follows slice order, so put winget first.
	Sources   []discovery.Searcher
	Inventory InventoryFunc
	// VerifyWingetID checks that a winget identifier resolves before a
	// merged record is appended; nil skips the check. Wired to winget show.
	VerifyWingetID func(ctx context.Context, id string) error
	ExportPath     string
	// Export writes the inventory file; defaults to export.WriteJSON.
	Export   func(path string, v any) error
	Log      *log.Logger
	PageSize int
	In       io.Reader
	Out      io.Writer
}

// Session is one interactive run. It owns the single input scanner; every
// prompt in the program, including install confirmations, reads through it.
type Session struct {
	cfg   Config
	in    *bufio.Scanner
	out   io.Writer
	state State
	pager *Paginator
	done  bool
}

// New creates a Session positioned at the main menu.
func New(cfg Config) *Session {
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	if cfg.Export == nil {
		cfg.Export = export.WriteJSON
	}
	return &Session{
		cfg: cfg,
		in:  bufio.NewScanner(cfg.In),
		out: cfg.Out,
	}
}

// Run drives the session until the user quits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for !s.done {
		switch s.state.Level {
		case LevelMain:
			s.stepMain(ctx)
		case LevelSubcategory:
			s.stepSubcategory()
		case LevelSoftware:
			s.stepSoftware(ctx)
		}
	}
	return nil
}

// readLine prints the prompt and reads one input line. The second return
// is false once input is exhausted, which ends the session.
func (s *Session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		s.done = true
		return "", false
	}
	return s.in.Text(), true
}

// Confirm asks a yes/no question; only an explicit yes is affirmative.
func (s *Session) Confirm(prompt string) bool {
	line, ok := s.readLine(prompt + " [y/N]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (s *Session) errorf(format string, args ...any) {
	fmt.Fprintln(s.out, errStyle.Render(fmt.Sprintf(format, args...)))
}

func (s *Session) stepMain(ctx context.Context) {
	cats := s.cfg.Catalog.Categories()

	fmt.Fprintln(s.out, titleStyle.Render("Categories"))
	for i, cat := range cats {
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, cat)
	}
	fmt.Fprintln(s.out, hintStyle.Render("[number] open   [s]earch   [i]nventory   [e]xport   [q]uit"))

	line, ok := s.readLine("> ")
	if !ok {
		return
	}

	cmd := Parse(line)
	switch cmd.Kind {
	case KindQuit:
		s.done = true
	case KindIndices:
		if len(cmd.Indices) != 1 || cmd.Indices[0] > len(cats) {
			s.errorf("Pick one category between 1 and %d.", len(cats))
			return
		}
		s.state = State{Level: LevelSubcategory, Category: cats[cmd.Indices[0]-1]}
	case KindSearch:
		s.searchAndMerge(ctx)
	case KindInventory:
		s.showInventory(ctx)
	case KindExport:
		s.exportInventory(ctx)
	default:
		s.errorf("Unrecognized input %q.", strings.TrimSpace(line))
	}
}

func (s *Session) stepSubcategory() {
	subs := s.cfg.Catalog.Subcategories(s.state.Category)

	fmt.Fprintln(s.out, titleStyle.Render(s.state.Category))
	for i, sub := range subs {
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, sub)
	}
	fmt.Fprintln(s.out, hintStyle.Render("[number] open   [b]ack   [q]uit"))

	line, ok := s.readLine("> ")
	if !ok {
		return
	}

	cmd := Parse(line)
	switch cmd.Kind {
	case KindQuit:
		s.done = true
	case KindBack:
		s.state = State{Level: LevelMain}
	case KindIndices:
		if len(cmd.Indices) != 1 || cmd.Indices[0] > len(subs) {
			s.errorf("Pick one subcategory between 1 and %d.", len(subs))
			return
		}
		sub := subs[cmd.Indices[0]-1]
		recs := s.cfg.Catalog.Records(s.state.Category, sub)
		s.state = State{Level: LevelSoftware, Category: s.state.Category, Subcategory: sub}
		s.pager = NewPaginator(len(recs), s.cfg.PageSize)
	default:
		s.errorf("Unrecognized input %q.", strings.TrimSpace(line))
	}
}

func (s *Session) stepSoftware(ctx context.Context) {
	recs := s.cfg.Catalog.Records(s.state.Category, s.state.Subcategory)
	if s.pager == nil {
		s.pager = NewPaginator(len(recs), s.cfg.PageSize)
	}

	header := fmt.Sprintf("%s / %s", s.state.Category, s.state.Subcategory)
	fmt.Fprintln(s.out, titleStyle.Render(header))
	start, end := s.pager.Bounds()
	for i := start; i < end; i++ {
		rec := recs[i]
		fmt.Fprintf(s.out, "%3d. %s (%s) - %s\n", i+1, rec.Name, rec.Type, rec.Description)
	}
	fmt.Fprintln(s.out, hintStyle.Render(fmt.Sprintf(
		"page %d/%d   [numbers] install   [all] install everything   [n]ext [p]rev [g N]   [b]ack   [q]uit",
		s.pager.Page(), s.pager.PageCount())))

	line, ok := s.readLine("> ")
	if !ok {
		return
	}

	cmd := Parse(line)
	switch cmd.Kind {
	case KindQuit:
		s.done = true
	case KindBack:
		s.state = State{Level: LevelSubcategory, Category: s.state.Category}
		s.pager = nil
	case KindNext:
		if !s.pager.Next() {
			s.errorf("Already on the last page.")
		}
	case KindPrev:
		if !s.pager.Prev() {
			s.errorf("Already on the first page.")
		}
	case KindGoToPage:
		if !s.pager.SetPage(cmd.Page) {
			s.errorf("No page %d; there are %d.", cmd.Page, s.pager.PageCount())
		}
	case KindAll:
		s.runInstall(ctx, recs)
	case KindIndices:
		selected := selectByIndex(recs, cmd.Indices)
		if len(selected) == 0 {
			s.errorf("No valid selections; indices run from 1 to %d.", len(recs))
			return
		}
		s.runInstall(ctx, selected)
	default:
		s.errorf("Unrecognized input %q.", strings.TrimSpace(line))
	}
}

// selectByIndex maps 1-based full-list positions to records, dropping
// out-of-range indices and duplicates while keeping the given order.
func selectByIndex(recs []catalog.Record, indices []int) []catalog.Record {
	seen := make(map[int]bool, len(indices))
	var out []catalog.Record
	for _, idx := range indices {
		if idx < 1 || idx > len(recs) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, recs[idx-1])
	}
	return out
}

func (s *Session) runInstall(ctx context.Context, recs []catalog.Record) {
	summary := s.cfg.Installer.InstallAll(ctx, recs)
	if summary.Aborted {
		fmt.Fprintln(s.out, warnStyle.Render("Installation aborted."))
		return
	}

	for _, o := range summary.Outcomes {
		if o.Success {
			fmt.Fprintf(s.out, "%s %s: %s\n", okStyle.Render("OK"), o.Name, o.Message)
		} else {
			fmt.Fprintf(s.out, "%s %s: %s\n", errStyle.Render("FAIL"), o.Name, o.Message)
		}
	}
	fmt.Fprintf(s.out, "Done: %d succeeded, %d failed.\n", summary.Succeeded, summary.Failed)
}

// showInventory renders the installed-software listing in its own paged
// view. Back returns to the main menu; quit ends the session.
func (s *Session) showInventory(ctx context.Context) {
	if s.cfg.Inventory == nil {
		s.errorf("Inventory is not available.")
		return
	}
	items, err := s.cfg.Inventory(ctx)
	if err != nil {
		s.errorf("Inventory failed: %v", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "No installed software found.")
		return
	}

	pager := NewPaginator(len(items), s.cfg.PageSize)
	for {
		fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("Installed software (%d)", len(items))))
		start, end := pager.Bounds()
		for i := start; i < end; i++ {
			item := items[i]
			line := fmt.Sprintf("%3d. %s", i+1, item.Name)
			if item.Version != "" {
				line += " " + item.Version
			}
			if item.Publisher != "" {
				line += " (" + item.Publisher + ")"
			}
			fmt.Fprintf(s.out, "%s [%s]\n", line, item.Source)
		}
		fmt.Fprintln(s.out, hintStyle.Render(fmt.Sprintf(
			"page %d/%d   [n]ext [p]rev [g N]   [b]ack", pager.Page(), pager.PageCount())))

		line, ok := s.readLine("> ")
		if !ok {
			return
		}
		cmd := Parse(line)
		switch cmd.Kind {
		case KindQuit:
			s.done = true
			return
		case KindBack:
			return
		case KindNext:
			if !pager.Next() {
				s.errorf("Already on the last page.")
			}
		case KindPrev:
			if !pager.Prev() {
				s.errorf("Already on the first page.")
			}
		case KindGoToPage:
			if !pager.SetPage(cmd.Page) {
				s.errorf("No page %d; there are %d.", cmd.Page, pager.PageCount())
			}
		default:
			s.errorf("Unrecognized input %q.", strings.TrimSpace(line))
		}
	}
}

// exportInventory writes the installed-software listing to a JSON file.
func (s *Session) exportInventory(ctx context.Context) {
	if s.cfg.Inventory == nil {
		s.errorf("Inventory is not available.")
		return
	}
	items, err := s.cfg.Inventory(ctx)
	if err != nil {
		s.errorf("Inventory failed: %v", err)
		return
	}

	path := s.cfg.ExportPath
	line, ok := s.readLine(fmt.Sprintf("Export path [%s]: ", path))
	if !ok {
		return
	}
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		path = trimmed
	}

	if err := s.cfg.Export(path, items); err != nil {
		s.errorf("Export failed: %v", err)
		return
	}
	fmt.Fprintf(s.out, "Exported %d item(s) to %s\n", len(items), path)
	s.cfg.Log.Info("exported inventory", "items", len(items), "path", path)
}
