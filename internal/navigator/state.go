package navigator

// Level is the depth of the browse hierarchy the session is showing.
type Level int

const (
	LevelMain Level = iota
	LevelSubcategory
	LevelSoftware
)

// State is the session's position in the hierarchy. There is exactly one
// State per running session and only the session loop mutates it; the
// software-list page lives in the session's paginator.
type State struct {
	Level       Level
	Category    string
	Subcategory string
}
