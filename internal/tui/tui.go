// Package tui is the interactive two-pane comparison view.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/timvw/dir-diff/internal/control"
	"github.com/timvw/dir-diff/internal/logging"
	"github.com/timvw/dir-diff/internal/model"
	"github.com/timvw/dir-diff/internal/pane"
)

// section selects which list of a pane is shown.
type section int

const (
	sectionDiff section = iota // entries only in this pane
	sectionList                // every entry
)

// paneView is the published state of one pane plus its cursor.
type paneView struct {
	title  string
	lines  []model.Line
	diff   []model.Line
	cursor [2]int // per section
	offset [2]int // per section
}

// messages
type controlMsg struct {
	cmd control.Command
	ok  bool
}

type clearStatusMsg struct{ seq int }

type exportDoneMsg struct {
	id   model.PaneID
	path string
	err  error
}

// TUI runs the interactive comparison.
type TUI struct {
	State         *pane.State
	Prompt        *Prompt
	Theme         string
	ShowHidden    bool
	StatusTimeout time.Duration // 0 keeps status messages until replaced
	Control       <-chan control.Command
	Logger        *slog.Logger

	model *Model
}

// Model implements tea.Model and pane.Presenter.
type Model struct {
	state   *pane.State
	prompt  *Prompt
	control <-chan control.Command
	logger  *slog.Logger
	keys    keyMap
	st      styles

	panes   [2]paneView
	focus   model.PaneID
	section section

	showHidden    bool
	statusTimeout time.Duration

	// dimensions
	width  int
	height int

	// status
	message   string
	isError   bool
	statusSeq int

	// pending holds notifications raised from pane callbacks that run
	// inside Update; they are turned into commands before Update returns.
	pending []tea.Cmd

	copy func(string) error
}

// NewModel builds the model. Call State.Bind with it before running.
func (t *TUI) NewModel() *Model {
	logger := t.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	prompt := t.Prompt
	if prompt == nil {
		prompt = NewPrompt()
	}
	return &Model{
		state:         t.State,
		prompt:        prompt,
		control:       t.Control,
		logger:        logger,
		keys:          defaultKeyMap(),
		st:            newStyles(ThemeByName(t.Theme)),
		showHidden:    t.ShowHidden,
		statusTimeout: t.StatusTimeout,
		copy:          clipboard.WriteAll,
	}
}

func (t *TUI) Run(ctx context.Context) error {
	m := t.NewModel()
	t.model = m
	t.State.Bind(m)
	defer t.State.Detach()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ReportExport forwards export outcomes to the running model. Pass it to
// pane.WithExportObserver.
func (t *TUI) ReportExport(id model.PaneID, path string, err error) {
	if t.model != nil {
		t.model.ReportExport(id, path, err)
	}
}

// ReportExport queues a status message for an export outcome.
func (m *Model) ReportExport(id model.PaneID, path string, err error) {
	m.pending = append(m.pending, func() tea.Msg {
		return exportDoneMsg{id: id, path: path, err: err}
	})
}

// --- pane.Presenter ---

func (m *Model) SetTitle(id model.PaneID, title string) {
	m.panes[id].title = title
}

func (m *Model) SetLines(id model.PaneID, lines []model.Line) {
	m.panes[id].lines = lines
	m.clamp(id, sectionList)
}

func (m *Model) SetDiff(id model.PaneID, lines []model.Line) {
	m.panes[id].diff = lines
	m.clamp(id, sectionDiff)
}

// --- tea.Model ---

func (m *Model) Init() tea.Cmd {
	return m.listenControl()
}

// listenControl waits for the next control command. Returns nil when no
// control channel is configured.
func (m *Model) listenControl() tea.Cmd {
	if m.control == nil {
		return nil
	}
	ch := m.control
	return func() tea.Msg {
		c, ok := <-ch
		return controlMsg{cmd: c, ok: ok}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, id := range model.Panes {
			m.clamp(id, sectionDiff)
			m.clamp(id, sectionList)
		}

	case controlMsg:
		if !msg.ok {
			return m, nil
		}
		cmd = tea.Batch(m.applyControl(msg.cmd), m.listenControl())

	case exportDoneMsg:
		if msg.err != nil {
			cmd = m.setError(fmt.Sprintf("Export of %s pane failed: %v", msg.id, msg.err))
		} else {
			cmd = m.setStatus(fmt.Sprintf("Exported %s pane to %s", msg.id, msg.path))
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.message = ""
			m.isError = false
		}

	default:
		if m.prompt.Active() {
			m.prompt.input, cmd = m.prompt.input.Update(msg)
		}
	}

	if len(m.pending) > 0 {
		cmds := append(m.pending, cmd)
		m.pending = nil
		return m, tea.Batch(cmds...)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.prompt.Active() {
		return m.handlePromptKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.SwitchPane):
		m.focus = m.focus.Complement()
	case key.Matches(msg, k.FocusLeft):
		m.focus = model.Left
	case key.Matches(msg, k.FocusRight):
		m.focus = model.Right
	case key.Matches(msg, k.ToggleDiff):
		if m.section == sectionDiff {
			m.section = sectionList
		} else {
			m.section = sectionDiff
		}
	case key.Matches(msg, k.Up):
		m.move(-1)
	case key.Matches(msg, k.Down):
		m.move(1)
	case key.Matches(msg, k.Top):
		m.move(-len(m.rows(m.focus, m.section)))
	case key.Matches(msg, k.Bottom):
		m.move(len(m.rows(m.focus, m.section)))
	case key.Matches(msg, k.Open):
		m.state.Open(m.focus)
		m.suggest(m.suggestFolder())
	case key.Matches(msg, k.Import):
		m.state.Import(m.focus)
		m.suggest(m.suggestDir())
	case key.Matches(msg, k.Export):
		m.state.Export(m.focus)
		m.suggest(m.suggestDir())
	case key.Matches(msg, k.Reload):
		m.state.Reload(m.focus)
		return m.setStatus(fmt.Sprintf("Reloaded %s pane", m.focus))
	case key.Matches(msg, k.ReloadAll):
		for _, id := range model.Panes {
			m.state.Reload(id)
		}
		return m.setStatus("Reloaded both panes")
	case key.Matches(msg, k.Strike):
		m.toggleStruck()
	case key.Matches(msg, k.Copy):
		return m.copyDiff()
	}
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.prompt.Cancel()
		return nil
	case "enter":
		m.prompt.Submit()
		return nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

func (m *Model) applyControl(c control.Command) tea.Cmd {
	targets, err := c.Targets()
	if err != nil {
		m.logger.Warn("ignoring control command", "op", c.Op, "pane", c.Pane, "err", err)
		return nil
	}
	switch c.Op {
	case control.OpReload:
		for _, id := range targets {
			m.state.Reload(id)
		}
		m.logger.Info("reloaded from control socket", "pane", c.Pane)
		return m.setStatus(fmt.Sprintf("Reloaded %s (remote)", c.Pane))
	}
	return nil
}

func (m *Model) suggest(path string) {
	if m.prompt.Active() && path != "" {
		m.prompt.Suggest(path)
	}
}

func (m *Model) suggestFolder() string {
	return m.panes[m.focus].title
}

func (m *Model) suggestDir() string {
	origin := m.panes[m.focus].title
	if origin == "" {
		return ""
	}
	return filepath.Dir(origin) + string(filepath.Separator)
}

// setStatus shows msg and schedules it to clear.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.message = msg
	m.isError = false
	return m.scheduleClear()
}

func (m *Model) setError(msg string) tea.Cmd {
	m.message = msg
	m.isError = true
	return m.scheduleClear()
}

func (m *Model) scheduleClear() tea.Cmd {
	m.statusSeq++
	if m.statusTimeout <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// rows returns the rows displayed for a pane section. Hidden entries are
// filtered from listings only; they still count as differences.
func (m *Model) rows(id model.PaneID, sec section) []model.Line {
	if sec == sectionDiff {
		return m.panes[id].diff
	}
	lines := m.panes[id].lines
	if m.showHidden {
		return lines
	}
	out := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		if !strings.HasPrefix(l.Text, ".") {
			out = append(out, l)
		}
	}
	return out
}

// rowIndex maps a visible row of a section back to its index in the
// published slice.
func (m *Model) rowIndex(id model.PaneID, sec section, visible int) int {
	if sec == sectionDiff || m.showHidden {
		return visible
	}
	n := -1
	for i, l := range m.panes[id].lines {
		if strings.HasPrefix(l.Text, ".") {
			continue
		}
		n++
		if n == visible {
			return i
		}
	}
	return -1
}

func (m *Model) move(delta int) {
	p := &m.panes[m.focus]
	p.cursor[m.section] += delta
	m.clamp(m.focus, m.section)
}

func (m *Model) clamp(id model.PaneID, sec section) {
	p := &m.panes[id]
	n := len(m.rows(id, sec))
	if p.cursor[sec] >= n {
		p.cursor[sec] = n - 1
	}
	if p.cursor[sec] < 0 {
		p.cursor[sec] = 0
	}

	height := m.listHeight()
	if p.cursor[sec] < p.offset[sec] {
		p.offset[sec] = p.cursor[sec]
	}
	if height > 0 && p.cursor[sec] >= p.offset[sec]+height {
		p.offset[sec] = p.cursor[sec] - height + 1
	}
	if p.offset[sec] > max(n-height, 0) {
		p.offset[sec] = max(n-height, 0)
	}
}

func (m *Model) toggleStruck() {
	p := &m.panes[m.focus]
	idx := m.rowIndex(m.focus, m.section, p.cursor[m.section])
	if idx < 0 {
		return
	}
	if m.section == sectionDiff {
		if idx < len(p.diff) {
			p.diff[idx].Struck = !p.diff[idx].Struck
		}
		return
	}
	if idx < len(p.lines) {
		p.lines[idx].Struck = !p.lines[idx].Struck
	}
}

func (m *Model) copyDiff() tea.Cmd {
	diff := m.panes[m.focus].diff
	if len(diff) == 0 {
		return m.setStatus(fmt.Sprintf("Nothing only in %s pane", m.focus))
	}
	names := make([]string, len(diff))
	for i, l := range diff {
		names[i] = l.Text
	}
	if err := m.copy(strings.Join(names, "\n") + "\n"); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		return m.setError(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.setStatus(fmt.Sprintf("Copied %d entries only in %s pane", len(names), m.focus))
}

// --- rendering ---

const (
	separator    = " │ "
	headerLines  = 3 // title, counts, rule
	footerLines  = 2 // status, hints
	promptHeight = 5
)

// listHeight is the number of rows available to a pane's list.
func (m *Model) listHeight() int {
	h := m.height - headerLines - footerLines
	if m.prompt != nil && m.prompt.Active() {
		h -= promptHeight
	}
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sepWidth := ansi.StringWidth(separator)
	colWidth := (m.width - sepWidth) / 2
	if colWidth < 10 {
		colWidth = 10
	}

	left := m.renderPane(model.Left, colWidth)
	right := m.renderPane(model.Right, colWidth)

	var b strings.Builder
	sep := m.st.header.Render(separator)
	for i := range left {
		b.WriteString(left[i])
		b.WriteString(sep)
		b.WriteString(right[i])
		b.WriteString("\n")
	}

	if m.prompt.Active() {
		b.WriteString(m.renderPrompt())
		b.WriteString("\n")
	}

	if m.message != "" {
		if m.isError {
			b.WriteString(m.st.err.Render(" " + m.message))
		} else {
			b.WriteString(m.st.status.Render(" " + m.message))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderHints())
	return b.String()
}

// renderPane returns exactly headerLines+listHeight lines, each padded to width.
func (m *Model) renderPane(id model.PaneID, width int) []string {
	p := &m.panes[id]
	focused := id == m.focus

	title := p.title
	if title == "" {
		title = "(empty)"
	}
	titleStyle := m.st.titleDim
	if focused {
		titleStyle = m.st.title
	}
	label := fmt.Sprintf("%s: %s", strings.ToUpper(id.String()), title)

	var which string
	if m.section == sectionDiff {
		which = fmt.Sprintf("only here: %d  (of %d)", len(p.diff), len(p.lines))
	} else {
		which = fmt.Sprintf("entries: %d  (%d only here)", len(m.rows(id, sectionList)), len(p.diff))
	}

	out := []string{
		titleStyle.Render(fit(label, width)),
		m.st.dim.Render(fit(which, width)),
		m.st.header.Render(strings.Repeat("─", width)),
	}

	rows := m.rows(id, m.section)
	height := m.listHeight()
	offset := p.offset[m.section]
	for i := 0; i < height; i++ {
		idx := offset + i
		if idx >= len(rows) {
			out = append(out, strings.Repeat(" ", width))
			continue
		}
		out = append(out, m.renderRow(rows[idx], focused && idx == p.cursor[m.section], width))
	}
	return out
}

func (m *Model) renderRow(l model.Line, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "→ "
	}
	text := fit(prefix+l.Text, width)
	switch {
	case selected:
		return m.st.selected.Render(text)
	case l.Struck:
		return m.st.struck.Render(text)
	case m.section == sectionDiff:
		return m.st.onlyHere.Render(text)
	default:
		return m.st.text.Render(text)
	}
}

func (m *Model) renderPrompt() string {
	var b strings.Builder
	b.WriteString(m.st.promptHead.Render(fmt.Sprintf("%s  [%s pane]", m.prompt.title, m.focus)))
	b.WriteString("\n")
	b.WriteString(m.st.dim.Render(m.prompt.hint() + "  Enter=confirm  Esc=cancel"))
	b.WriteString("\n")
	b.WriteString(m.prompt.input.View())
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return m.st.promptBox.Width(width).Render(b.String())
}

func (m *Model) renderHints() string {
	var parts []string
	for _, h := range m.keys.hints() {
		help := h.Help()
		parts = append(parts, m.st.hintKey.Render(help.Key)+" "+m.st.hintDesc.Render(help.Desc))
	}
	return " " + strings.Join(parts, m.st.hintDesc.Render("  "))
}

// fit truncates s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	return padRight(s, width)
}

// padRight pads a string with spaces to reach the desired visible width.
func padRight(s string, width int) string {
	visible := ansi.StringWidth(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
