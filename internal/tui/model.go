// Package tui provides the BubbleTea-based bus monitor.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/output"
)

// DefaultMaxItems is the number of envelopes kept when RunOptions.MaxItems
// is zero.
const DefaultMaxItems = 1000

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Subscription filter shown in the title
	filter string

	// Current mode
	mode Mode

	// Components
	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model

	// State
	envelopes   []bus.Envelope // oldest first
	selected    *bus.Envelope
	searchQuery string
	paused      bool
	missed      int // envelopes received while paused
	maxItems    int
	width       int
	height      int
	ready       bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	events <-chan bus.Envelope
	copy   func(string) error
}

// envelopeItem wraps an envelope for the list component.
type envelopeItem struct {
	env bus.Envelope
}

func (i envelopeItem) Title() string {
	return i.env.Topic
}

func (i envelopeItem) Description() string {
	return fmt.Sprintf("%s · %s · %s",
		output.RelativeTime(i.env.Time),
		output.Size(len(i.env.Payload)),
		payloadPreview(i.env.Payload, 80))
}

func (i envelopeItem) FilterValue() string {
	return i.env.Topic + " " + string(i.env.Payload)
}

// envelopeDelegate is a custom list delegate that colours topics by kind.
type envelopeDelegate struct {
	list.DefaultDelegate
}

func newEnvelopeDelegate() envelopeDelegate {
	return envelopeDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// topicColor returns the colour for a topic, or "" for the default.
func topicColor(topic string) lipgloss.Color {
	switch {
	case strings.HasSuffix(topic, "/error"):
		return lipgloss.Color("9")
	case strings.HasSuffix(topic, "/version"), strings.HasSuffix(topic, "/versionRequest"):
		return lipgloss.Color("8")
	case strings.HasPrefix(topic, "hermes/intent/"):
		return lipgloss.Color("10")
	default:
		return ""
	}
}

// Render renders an envelope with its topic coloured by kind.
func (d envelopeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(envelopeItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	titleStyle := d.DefaultDelegate.Styles.NormalTitle
	descStyle := d.DefaultDelegate.Styles.NormalDesc
	if index == m.Index() {
		titleStyle = d.DefaultDelegate.Styles.SelectedTitle
		descStyle = d.DefaultDelegate.Styles.SelectedDesc
	}
	if c := topicColor(ei.env.Topic); c != "" {
		titleStyle = titleStyle.Foreground(c)
	}

	title := ellipsis(ei.Title(), itemWidth)
	desc := ellipsis(ei.Description(), itemWidth)

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(desc))
}

func ellipsis(s string, width int) string {
	if width <= 1 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

// payloadPreview renders a payload on one line. Binary payloads are shown
// by size only.
func payloadPreview(payload []byte, maxLen int) string {
	if len(payload) == 0 {
		return "(empty)"
	}
	if !utf8.Valid(payload) {
		return fmt.Sprintf("<%d bytes binary>", len(payload))
	}
	s := strings.Join(strings.Fields(string(payload)), " ")
	return ellipsis(s, maxLen)
}

// New creates a new monitor model reading envelopes from events.
func New(filter string, events <-chan bus.Envelope, maxItems int) Model {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	l := list.New(nil, newEnvelopeDelegate(), 0, 0)
	l.Title = "hermes " + filter
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "topic filter or text..."
	searchInput.CharLimit = 200

	return Model{
		filter:      filter,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		help:        help.New(),
		keys:        DefaultKeyMap(),
		maxItems:    maxItems,
		events:      events,
		copy:        copyText,
	}
}

// Init starts waiting for envelopes.
func (m Model) Init() tea.Cmd {
	return m.waitForEnvelope
}

type envelopeMsg struct {
	env bus.Envelope
}

type feedClosedMsg struct{}

// waitForEnvelope blocks until the subscription delivers.
func (m Model) waitForEnvelope() tea.Msg {
	if m.events == nil {
		return nil
	}
	env, ok := <-m.events
	if !ok {
		return feedClosedMsg{}
	}
	return envelopeMsg{env: env}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		if m.selected != nil {
			m.viewport.SetContent(renderDetail(*m.selected))
		}
		return m, nil

	case envelopeMsg:
		m.add(msg.env)
		return m, m.waitForEnvelope

	case feedClosedMsg:
		return m, func() tea.Msg {
			return statusMsg{text: "Subscription closed", isErr: true}
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Copied to clipboard", isErr: false}
		}
	}

	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// add records env, dropping the oldest envelope past maxItems. The list is
// left alone while paused.
func (m *Model) add(env bus.Envelope) {
	m.envelopes = append(m.envelopes, env)
	if over := len(m.envelopes) - m.maxItems; over > 0 {
		m.envelopes = append(m.envelopes[:0], m.envelopes[over:]...)
	}
	if m.paused {
		m.missed++
		return
	}
	shift := 0
	if matchesQuery(env, m.searchQuery) {
		shift = 1
	}
	m.refresh(shift)
}

// refresh rebuilds the list. Newest is on top, so a cursor away from the
// top moves down by shift to stay on the same envelope.
func (m *Model) refresh(shift int) {
	idx := m.list.Index()
	m.list.SetItems(m.buildListItems())
	if idx > 0 && shift > 0 {
		m.list.Select(min(idx+shift, len(m.list.Items())-1))
	}
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry takes every key except ctrl+c.
	if m.mode == ModeSearch {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
	}
	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(envelopeItem); ok {
			m.openDetail(item.env)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(envelopeItem); ok {
			return m, m.copyToClipboard(string(item.env.Payload))
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyTopic):
		if item, ok := m.list.SelectedItem().(envelopeItem); ok {
			return m, m.copyToClipboard(item.env.Topic)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAllJSON):
		data, err := json.MarshalIndent(m.visibleViews(), "", "  ")
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Failed to marshal JSON: " + err.Error(), isErr: true}
			}
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.CopyAllYAML):
		data, err := yaml.Marshal(m.visibleViews())
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Failed to marshal YAML: " + err.Error(), isErr: true}
			}
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			return m, func() tea.Msg {
				return statusMsg{text: "Paused", isErr: false}
			}
		}
		missed := m.missed
		m.missed = 0
		m.refresh(0)
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Resumed, %d new", missed), isErr: false}
		}

	case key.Matches(msg, m.keys.Clear):
		m.envelopes = nil
		m.missed = 0
		m.list.SetItems(nil)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copyToClipboard(string(m.selected.Payload))
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyTopic):
		if m.selected != nil {
			return m, m.copyToClipboard(m.selected.Topic)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		return m, nil

	case tea.KeyEnter:
		// Keep the query and return to the list.
		m.mode = ModeList
		m.searchInput.Blur()
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	m.searchQuery = m.searchInput.Value()
	m.list.SetItems(m.buildListItems())

	return m, cmd
}

func (m *Model) openDetail(env bus.Envelope) {
	m.selected = &env
	m.mode = ModeDetail
	m.viewport.SetContent(renderDetail(env))
	m.viewport.GotoTop()
}

// matchesQuery reports whether env matches a search query. A query with a
// wildcard level is a topic filter; anything else is a case-insensitive
// substring of the topic or payload.
func matchesQuery(env bus.Envelope, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if bus.IsFilter(query) {
		return bus.Match(query, env.Topic)
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(env.Topic), q) ||
		strings.Contains(strings.ToLower(string(env.Payload)), q)
}

// buildListItems returns the matching envelopes, newest first.
func (m Model) buildListItems() []list.Item {
	items := make([]list.Item, 0, len(m.envelopes))
	for i := len(m.envelopes) - 1; i >= 0; i-- {
		if matchesQuery(m.envelopes[i], m.searchQuery) {
			items = append(items, envelopeItem{env: m.envelopes[i]})
		}
	}
	return items
}

func (m Model) visibleViews() []output.EnvelopeView {
	items := m.list.Items()
	views := make([]output.EnvelopeView, 0, len(items))
	for _, item := range items {
		if ei, ok := item.(envelopeItem); ok {
			views = append(views, output.NewEnvelopeView(ei.env))
		}
	}
	return views
}

// renderDetail renders the detail view for an envelope. Structured
// payloads are shown as YAML.
func renderDetail(env bus.Envelope) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(env.Topic) + "\n\n")

	b.WriteString(labelStyle.Render("ID: ") + env.ID + "\n")
	b.WriteString(labelStyle.Render("Time: ") + env.Time.Format(time.RFC3339Nano) +
		" (" + output.RelativeTime(env.Time) + ")\n")
	b.WriteString(labelStyle.Render("Size: ") + output.Size(len(env.Payload)) + "\n")

	b.WriteString("\n" + labelStyle.Render("Payload:") + "\n")
	view := output.NewEnvelopeView(env)
	switch p := view.Payload.(type) {
	case nil:
		b.WriteString("(empty)\n")
	case string:
		b.WriteString(p + "\n")
	default:
		data, err := yaml.Marshal(p)
		if err != nil {
			b.WriteString(string(env.Payload) + "\n")
			break
		}
		b.Write(data)
	}

	return b.String()
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	s := m.list.View()

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else if m.paused {
		s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("11")).
			Render(fmt.Sprintf("PAUSED (%d new)", m.missed))
	} else {
		s += "\n" + m.buildKeybindBar(m.width, "list")
	}

	return s
}

func (m Model) viewDetail() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	header := headerStyle.Render("Message Detail")

	return header + "\n" + m.viewport.View() + "\n" + m.buildKeybindBar(m.width, "detail")
}

func (m Model) viewSearch() string {
	countStr := fmt.Sprintf("(%d matches)", len(m.list.Items()))

	searchBar := "Search: " + m.searchInput.View() + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.buildKeybindBar(m.width, "search")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	m.help.ShowAll = true
	m.help.Width = m.width

	return titleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.View(m.keys) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press ? or esc to return")
}

// keybind is one entry of the status bar.
type keybind struct {
	key  string
	desc string
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// Binds are listed most important first.
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind
	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit"},
			{"enter", "view"},
			{"?", "help"},
			{"/", "search"},
			{"p", "pause"},
			{"c", "copy"},
			{"x", "clear"},
		}
	case "detail":
		binds = []keybind{
			{"q", "quit"},
			{"esc", "back"},
			{"c", "copy payload"},
			{"t", "copy topic"},
			{"j/k", "scroll"},
		}
	case "search":
		binds = []keybind{
			{"enter", "apply"},
			{"esc", "clear"},
			{"↑/↓", "navigate"},
		}
	}

	const separator = "  "
	var parts []string
	used := 0
	for _, b := range binds {
		plain := lipgloss.Width(b.key + " " + b.desc)
		next := used + plain
		if len(parts) > 0 {
			next += len(separator)
		}
		if width > 0 && next > width {
			break
		}
		parts = append(parts, keyStyle.Render(b.key)+" "+b.desc)
		used = next
	}

	return style.Render(strings.Join(parts, separator))
}

// RunOptions configures the monitor.
type RunOptions struct {
	Bus      *bus.Bus
	Filter   string // Topic filter; empty = everything
	MaxItems int    // Envelopes kept; 0 = DefaultMaxItems
}

// Run subscribes to the bus and runs the monitor until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Bus == nil {
		return errors.New("no bus provided")
	}
	filter := opts.Filter
	if filter == "" {
		filter = "#"
	}

	events := make(chan bus.Envelope, 256)
	sub, err := opts.Bus.Subscribe(filter, func(env bus.Envelope) {
		select {
		case events <- env:
		default:
			// Full; the monitor lags, the bus does not.
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", filter, err)
	}
	defer sub.Unsubscribe()

	m := New(filter, events, opts.MaxItems)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
