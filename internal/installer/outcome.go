package installer

import (
	"github.com/appcellar/appcellar/internal/catalog"
)

// Outcome is the result of one install attempt.
type Outcome struct {
	Name    string
	Type    catalog.Type
	Success bool
	Message string
}

// Summary aggregates the outcomes of a batch install run.
type Summary struct {
	Succeeded int
	Failed    int
	// Aborted is set when the user declined the up-front confirmation;
	// no item was attempted.
	Aborted  bool
	Outcomes []Outcome
}

// Total returns the number of attempted items.
func (s Summary) Total() int {
	return len(s.Outcomes)
}

func (s *Summary) record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.Success {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

func success(rec catalog.Record, msg string) Outcome {
	return Outcome{Name: rec.Name, Type: rec.Type, Success: true, Message: msg}
}

func failure(rec catalog.Record, msg string) Outcome {
	return Outcome{Name: rec.Name, Type: rec.Type, Success: false, Message: msg}
}
