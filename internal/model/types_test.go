package model

import (
	"encoding/json"
	"testing"
)

func TestPaneIDComplement(t *testing.T) {
	if Left.Complement() != Right {
		t.Errorf("Left.Complement() = %v, want right", Left.Complement())
	}
	if Right.Complement() != Left {
		t.Errorf("Right.Complement() = %v, want left", Right.Complement())
	}
	for _, id := range Panes {
		if id.Complement().Complement() != id {
			t.Errorf("%v: complement is not an involution", id)
		}
	}
}

func TestParsePaneID(t *testing.T) {
	tests := []struct {
		input   string
		want    PaneID
		wantErr bool
	}{
		{"left", Left, false},
		{"l", Left, false},
		{"right", Right, false},
		{"r", Right, false},
		{"middle", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePaneID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePaneID(%q): error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePaneID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaneIDJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Pane PaneID `json:"pane"`
	}{Right})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"pane":"right"}` {
		t.Errorf("got %s", data)
	}

	var decoded struct {
		Pane PaneID `json:"pane"`
	}
	if err := json.Unmarshal([]byte(`{"pane":"left"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Pane != Left {
		t.Errorf("got %v, want left", decoded.Pane)
	}
	if err := json.Unmarshal([]byte(`{"pane":"up"}`), &decoded); err == nil {
		t.Error("expected error for unknown pane name")
	}
}

func TestEntrySetDuplicatesCollapse(t *testing.T) {
	s := NewEntrySet("x", "y", "y")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("x") || !s.Has("y") {
		t.Errorf("expected x and y, got %v", s.Sorted())
	}
}

func TestEntrySetDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b EntrySet
		want EntrySet
	}{
		{"disjoint", NewEntrySet("a", "b"), NewEntrySet("c"), NewEntrySet("a", "b")},
		{"overlap", NewEntrySet("a", "b", "c"), NewEntrySet("b", "c", "d"), NewEntrySet("a")},
		{"identical", NewEntrySet("a", "b"), NewEntrySet("a", "b"), NewEntrySet()},
		{"empty left", NewEntrySet(), NewEntrySet("a"), NewEntrySet()},
		{"empty right", NewEntrySet("a"), NewEntrySet(), NewEntrySet("a")},
		{"nil right", NewEntrySet("a"), nil, NewEntrySet("a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Difference(tt.b)
			if !got.Equal(tt.want) {
				t.Errorf("Difference = %v, want %v", got.Sorted(), tt.want.Sorted())
			}
			for n := range got {
				if tt.b.Has(n) {
					t.Errorf("difference contains complement member %q", n)
				}
			}
		})
	}
}

func TestEntrySetSorted(t *testing.T) {
	got := NewEntrySet("sub", "b.txt", "a.txt").Sorted()
	want := []string{"a.txt", "b.txt", "sub"}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEntrySetJSONRoundTrip(t *testing.T) {
	orig := NewEntrySet("a.txt", "b.txt", "sub")
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["a.txt","b.txt","sub"]` {
		t.Errorf("marshal = %s", data)
	}

	var decoded EntrySet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(orig) {
		t.Errorf("round trip = %v, want %v", decoded.Sorted(), orig.Sorted())
	}
}

func TestEntrySetUnmarshalRejectsNonArrays(t *testing.T) {
	for _, input := range []string{`{"a":1}`, `"a"`, `null`, `[1,2]`, `not json`} {
		var s EntrySet
		if err := json.Unmarshal([]byte(input), &s); err == nil {
			t.Errorf("Unmarshal(%s): expected error, got %v", input, s.Sorted())
		}
	}
}

func TestLines(t *testing.T) {
	lines := Lines([]string{"a", "b"})
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if l.Struck {
			t.Errorf("line %q: Struck should default to false", l.Text)
		}
	}
	if lines[0].Text != "a" || lines[1].Text != "b" {
		t.Errorf("order not preserved: %+v", lines)
	}
}
