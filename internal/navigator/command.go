package navigator

import (
	"strconv"
	"strings"
)

// Kind discriminates parsed user commands.
type Kind int

const (
	KindInvalid Kind = iota
	KindQuit
	KindBack
	KindNext
	KindPrev
	KindGoToPage
	KindAll
	KindIndices
	KindInventory
	KindSearch
	KindExport
)

// Command is one parsed line of user input. Raw strings are parsed here,
// once, at the boundary; transition logic never re-interprets input.
type Command struct {
	Kind    Kind
	Page    int   // KindGoToPage, 1-based
	Indices []int // KindIndices, 1-based, unvalidated
}

// Parse turns a raw input line into a Command. Anything unrecognizable is
// KindInvalid, which callers answer with a re-prompt.
func Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Kind: KindInvalid}
	}

	switch strings.ToLower(trimmed) {
	case "q", "quit", "exit":
		return Command{Kind: KindQuit}
	case "b", "back":
		return Command{Kind: KindBack}
	case "n", "next":
		return Command{Kind: KindNext}
	case "p", "prev", "previous":
		return Command{Kind: KindPrev}
	case "all":
		return Command{Kind: KindAll}
	case "i", "inventory":
		return Command{Kind: KindInventory}
	case "s", "search":
		return Command{Kind: KindSearch}
	case "e", "export":
		return Command{Kind: KindExport}
	}

	if page, ok := parsePageJump(trimmed); ok {
		return Command{Kind: KindGoToPage, Page: page}
	}
	if indices, ok := parseIndices(trimmed); ok {
		return Command{Kind: KindIndices, Indices: indices}
	}
	return Command{Kind: KindInvalid}
}

// parsePageJump recognizes "g N" and "page N".
func parsePageJump(s string) (int, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return 0, false
	}
	if fields[0] != "g" && fields[0] != "page" {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIndices parses a comma- or whitespace-separated list of positive
// 1-based indices. The whole input must be numeric for it to count as a
// selection; bounds are the caller's concern.
func parseIndices(s string) ([]int, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, false
	}

	indices := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, false
		}
		indices = append(indices, n)
	}
	return indices, true
}
