package pane

import "github.com/timvw/dir-diff/internal/model"

// Dialog titles shown to the user.
const (
	TitleOpen   = "Open folder..."
	TitleImport = "Import list..."
	TitleExport = "Export list..."
)

// Filter restricts a file dialog to names with one of the given extensions.
type Filter struct {
	Name       string
	Extensions []string
}

// JSONFilter is the filter used for importing and exporting listings.
var JSONFilter = Filter{Name: "JSON", Extensions: []string{"json"}}

// Done resumes an operation after a dialog closes. ok is false when the user
// cancelled, in which case path is meaningless.
type Done func(path string, ok bool)

// Dialog asks the user for a path. Implementations call done exactly once,
// from the goroutine that owns the State, possibly long after returning.
type Dialog interface {
	PickFolder(title string, done Done)
	PickFile(title string, filter Filter, done Done)
	SaveFile(title string, filter Filter, done Done)
}

// Presenter receives the derived view of each pane.
type Presenter interface {
	SetTitle(id model.PaneID, title string)
	SetLines(id model.PaneID, lines []model.Line)
	SetDiff(id model.PaneID, lines []model.Line)
}
