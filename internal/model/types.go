// Package model holds the value types shared by the loader, the pane state
// and the presentation layer.
package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PaneID identifies one of the two compared panes.
type PaneID int

const (
	Left PaneID = iota
	Right
)

// Panes lists both pane identities in display order.
var Panes = [...]PaneID{Left, Right}

// Complement returns the pane a diff is computed against.
func (id PaneID) Complement() PaneID {
	if id == Left {
		return Right
	}
	return Left
}

func (id PaneID) String() string {
	switch id {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("pane(%d)", int(id))
	}
}

// ParsePaneID accepts "left" or "right".
func ParsePaneID(s string) (PaneID, error) {
	switch s {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown pane %q (want left or right)", s)
	}
}

// MarshalJSON encodes the pane as its name.
func (id PaneID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes "left" or "right".
func (id *PaneID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePaneID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// EntrySet is an unordered set of entry names.
// The zero value is an empty, read-only set; use NewEntrySet before Add.
type EntrySet map[string]struct{}

// NewEntrySet builds a set from names. Duplicates collapse.
func NewEntrySet(names ...string) EntrySet {
	s := make(EntrySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s EntrySet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s EntrySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of entries.
func (s EntrySet) Len() int {
	return len(s)
}

// Sorted returns the entries in lexical order.
func (s EntrySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Difference returns the entries of s that are not in other.
func (s EntrySet) Difference(other EntrySet) EntrySet {
	out := make(EntrySet)
	for n := range s {
		if !other.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets hold exactly the same entries.
func (s EntrySet) Equal(other EntrySet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Has(n) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array of strings.
func (s EntrySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of strings. Anything else is an error.
func (s *EntrySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	if names == nil {
		return fmt.Errorf("expected a JSON array of strings, got %s", truncateJSON(data))
	}
	*s = NewEntrySet(names...)
	return nil
}

func truncateJSON(data []byte) string {
	if len(data) > 32 {
		return string(data[:32]) + "..."
	}
	return string(data)
}

// Slot is the content of one pane: where it was loaded from and what it holds.
type Slot struct {
	// Origin is the path the slot was last loaded from. Empty if never loaded.
	Origin string `json:"origin"`
	// Entries is the loaded entry set. Never nil after a load.
	Entries EntrySet `json:"entries"`
}

// Line is a single display row of a listing or a diff.
type Line struct {
	Text string `json:"text"`
	// Struck marks a row as seen. Display-only; defaults to false.
	Struck bool `json:"struck,omitempty"`
}

// Lines turns names into unstruck display rows, preserving order.
func Lines(names []string) []Line {
	lines := make([]Line, len(names))
	for i, n := range names {
		lines[i] = Line{Text: n}
	}
	return lines
}

// View is the derived, published state of one pane.
type View struct {
	Pane  PaneID `json:"pane"`
	Title string `json:"title"`
	Lines []Line `json:"lines"`
	Diff  []Line `json:"diff"`
}
