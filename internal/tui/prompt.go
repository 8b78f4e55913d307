package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/timvw/dir-diff/internal/pane"
)

type promptKind int

const (
	promptFolder promptKind = iota
	promptFile
	promptSave
)

// Prompt is the inline path prompt that backs pane.Dialog. A request only
// records the continuation; the model resolves it when the user presses Enter
// or Esc, from inside Update.
type Prompt struct {
	input  textinput.Model
	active bool
	kind   promptKind
	title  string
	filter pane.Filter
	done   pane.Done
}

// NewPrompt returns an idle prompt.
func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.Placeholder = "path"
	ti.CharLimit = 4096
	ti.Width = 60
	return &Prompt{input: ti}
}

func (p *Prompt) PickFolder(title string, done pane.Done) {
	p.open(promptFolder, title, pane.Filter{}, done)
}

func (p *Prompt) PickFile(title string, filter pane.Filter, done pane.Done) {
	p.open(promptFile, title, filter, done)
}

func (p *Prompt) SaveFile(title string, filter pane.Filter, done pane.Done) {
	p.open(promptSave, title, filter, done)
}

// open replaces any pending request. The replaced request is cancelled so
// its operation still completes exactly once.
func (p *Prompt) open(kind promptKind, title string, filter pane.Filter, done pane.Done) {
	if p.active {
		p.Cancel()
	}
	p.active = true
	p.kind = kind
	p.title = title
	p.filter = filter
	p.done = done
	p.input.SetValue("")
	p.input.Focus()
}

// Active reports whether a request is waiting for the user.
func (p *Prompt) Active() bool {
	return p.active
}

// Suggest prefills the input.
func (p *Prompt) Suggest(path string) {
	p.input.SetValue(path)
	p.input.CursorEnd()
}

// Submit resolves the pending request with the typed path. An empty path
// cancels.
func (p *Prompt) Submit() {
	if !p.active {
		return
	}
	path := expandHome(strings.TrimSpace(p.input.Value()))
	if path == "" {
		p.Cancel()
		return
	}
	if p.kind == promptSave && filepath.Ext(path) == "" && len(p.filter.Extensions) > 0 {
		path += "." + p.filter.Extensions[0]
	}
	done := p.finish()
	done(path, true)
}

// Cancel resolves the pending request as cancelled.
func (p *Prompt) Cancel() {
	if !p.active {
		return
	}
	done := p.finish()
	done("", false)
}

func (p *Prompt) finish() pane.Done {
	done := p.done
	p.active = false
	p.done = nil
	p.input.Blur()
	return done
}

// hint describes what the prompt expects.
func (p *Prompt) hint() string {
	switch p.kind {
	case promptFolder:
		return "directory"
	default:
		if len(p.filter.Extensions) > 0 {
			return p.filter.Name + " file (*." + strings.Join(p.filter.Extensions, ", *.") + ")"
		}
		return "file"
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
