package control

import (
	"fmt"
	"strings"

	"github.com/timvw/dir-diff/internal/model"
)

// Supported operations.
const (
	OpReload = "reload"
)

// Pane selectors accepted in addition to "left" and "right".
const PaneBoth = "both"

// Command is one control message, encoded as a single JSON datagram.
type Command struct {
	Op   string `json:"op"`
	Pane string `json:"pane"`
}

// Validate reports whether the command can be applied.
func (c Command) Validate() error {
	switch c.Op {
	case OpReload:
	default:
		return fmt.Errorf("invalid op %q", c.Op)
	}
	if _, err := c.Targets(); err != nil {
		return err
	}
	return nil
}

// Targets resolves the pane selector to the panes the command applies to.
func (c Command) Targets() ([]model.PaneID, error) {
	sel := strings.ToLower(strings.TrimSpace(c.Pane))
	if sel == PaneBoth {
		return model.Panes[:], nil
	}
	id, err := model.ParsePaneID(sel)
	if err != nil {
		return nil, err
	}
	return []model.PaneID{id}, nil
}
