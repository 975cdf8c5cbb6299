package winget

import (
	"regexp"
	"strings"
)

// Row is one parsed line of winget's tabular output. Which columns are
// populated depends on the subcommand: search and list fill Name, ID,
// Version, and sometimes Source; upgrade additionally fills Available.
type Row struct {
	Name      string
	ID        string
	Version   string
	Available string
	Source    string
}

// columnSplit matches runs of two or more whitespace characters, the
// boundary between fixed-width columns. Single spaces stay inside a column
// so multi-word names survive.
var columnSplit = regexp.MustCompile(`\s{2,}`)

// ParseTable parses winget's tabular output: everything before the dashed
// separator line is header, every line after it is a candidate row. Lines
// that do not split into at least a name, an identifier, and a version are
// discarded rather than treated as errors; the format is too loose to do
// better.
func ParseTable(output string) []Row {
	lines := strings.Split(output, "\n")

	// Find the separator line (all dashes) that ends the header.
	sep := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(trimProgressNoise(line))
		if len(trimmed) >= 3 && strings.Count(trimmed, "-") == len(trimmed) {
			sep = i
			break
		}
	}
	if sep < 0 || sep+1 >= len(lines) {
		return nil
	}

	var rows []Row
	for _, line := range lines[sep+1:] {
		line = strings.TrimRight(trimProgressNoise(line), " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := columnSplit.Split(line, -1)
		if len(cols) < 3 {
			// Malformed line: discarded, not fatal.
			continue
		}

		row := Row{
			Name:    strings.TrimSpace(cols[0]),
			ID:      strings.TrimSpace(cols[1]),
			Version: strings.TrimSpace(cols[2]),
		}
		if row.Name == "" || row.ID == "" {
			continue
		}
		switch len(cols) {
		case 3:
		case 4:
			row.Source = strings.TrimSpace(cols[3])
		default:
			// Five columns or more means an Available column sits
			// between Version and Source (winget upgrade).
			row.Available = strings.TrimSpace(cols[3])
			row.Source = strings.TrimSpace(cols[len(cols)-1])
		}
		rows = append(rows, row)
	}
	return rows
}
