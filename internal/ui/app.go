package ui

import (
	"context"
	"strings"
	"time"

	"viaggio/internal/config"
	"viaggio/internal/itinerary"
	"viaggio/internal/logging"
	"viaggio/internal/mapview"
	"viaggio/internal/model"
	"viaggio/internal/progress"
	"viaggio/internal/render"
	"viaggio/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout: header (2 lines) + tabs (2 lines) + footer (2 lines).
const chromeHeight = 6

// checkItem is a mounted checklist entry.
type checkItem struct {
	index   int
	checked bool
}

// SetChecked implements progress.CheckboxHandle.
func (c *checkItem) SetChecked(checked bool) {
	c.checked = checked
}

// Model is the root Bubble Tea model. It owns the session state: the
// displayed day, focus, dialogs and the lazily created map.
type Model struct {
	cfg              *config.Config
	store            *itinerary.Store
	tracker          *progress.Tracker
	logger           *logging.Logger
	termCapabilities mapview.TerminalCapabilities
	keys             KeyMap

	width  int
	height int

	loadErr     error
	error       string
	showingHelp bool

	tree       *render.Node
	focusables []*render.Node
	cursor     int
	items      []*checkItem
	viewport   viewport.Model

	details   detailsDialog
	mapDlg    mapDialog
	top       model.Modal
	mapWidget *mapview.Map
}

// New creates a new root model.
func New(cfg *config.Config, store *itinerary.Store, tracker *progress.Tracker, logger *logging.Logger, termCaps mapview.TerminalCapabilities) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Model{
		cfg:              cfg,
		store:            store,
		tracker:          tracker,
		logger:           logger.With("component", "ui"),
		termCapabilities: termCaps,
		keys:             DefaultKeyMap(),
		viewport:         viewport.New(0, 0),
	}
}

// Init starts loading the document and the autosave timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadDocumentCmd(m.store, m.cfg.Itinerary.Source),
		autosaveTickCmd(m.cfg.Progress.AutosaveInterval()),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case model.DocumentLoadedMsg:
		m.loadErr = nil
		m.error = ""
		m.logger.Info("itinerary loaded", "days", len(msg.Document.Itinerary))
		m.showDay(m.store.CurrentDay())
		return m, nil

	case model.DocumentFailedMsg:
		m.loadErr = msg.Err
		m.logger.Error("failed to load itinerary", "error", msg.Err)
		m.mount(render.LoadFailed())
		return m, nil

	case model.ProgressTickMsg:
		return m, tea.Batch(m.flushCmd(), autosaveTickCmd(m.cfg.Progress.AutosaveInterval()))

	case model.ProgressFlushedMsg:
		if msg.Err != nil {
			m.logger.Error("failed to save progress", "error", msg.Err)
			m.error = msg.Err.Error()
		} else {
			m.error = ""
		}
		return m, nil

	case model.ShowDetailsMsg:
		m.openDetails(msg)
		return m, nil

	case model.ShowOnMapMsg:
		m.openMap(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Sequence(m.flushCmd(), tea.Quit)
	}

	if m.showingHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.showingHelp = false
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Cancel) {
		m.closeAll()
		return m, nil
	}

	if m.top != model.ModalNone {
		if key.Matches(msg, m.keys.Close) {
			m.closeModal(m.top)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true

	case key.Matches(msg, m.keys.JumpDay):
		idx, err := util.ParseDayNumber(msg.String())
		if err == nil && idx < m.dayCount() {
			m.showDay(idx)
		}

	case key.Matches(msg, m.keys.PrevDay):
		if cur := m.store.CurrentDay(); cur > 0 {
			m.showDay(cur - 1)
		}

	case key.Matches(msg, m.keys.NextDay):
		if cur := m.store.CurrentDay(); cur+1 < m.dayCount() {
			m.showDay(cur + 1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.focusables)-1 {
			m.cursor++
			m.refresh()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()

	case key.Matches(msg, m.keys.Toggle):
		m.toggleFocused()

	case key.Matches(msg, m.keys.Select):
		if n := m.focused(); n != nil && n.Kind == render.KindCheckbox {
			m.toggleFocused()
			return m, nil
		}
		return m, m.trigger(render.ActionShowDetails)

	case key.Matches(msg, m.keys.Details):
		return m, m.trigger(render.ActionShowDetails)

	case key.Matches(msg, m.keys.ShowMap):
		return m, m.trigger(render.ActionShowOnMap)
	}

	return m, nil
}

// handleMouse closes the topmost dialog on a left click outside its box.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.top == model.ModalNone {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.modalBounds().contains(msg.X, msg.Y) {
		m.closeModal(m.top)
	}
	return m, nil
}

// dayCount is the number of day controls.
func (m Model) dayCount() int {
	if m.cfg.Itinerary.Days > 0 {
		return m.cfg.Itinerary.Days
	}
	return m.store.Len()
}

// showDay makes index current and displays it.
func (m *Model) showDay(index int) {
	m.store.SetCurrentDay(index)

	day, err := m.store.Lookup(index)
	if err != nil {
		m.logger.Debug("day not displayed", "error", err)
		m.mount(render.NotFound())
		return
	}
	m.mount(render.Render(day))
}

// mount replaces the displayed tree and restores checklist state onto it.
func (m *Model) mount(tree *render.Node) {
	m.tree = tree

	boxes := tree.Checkboxes()
	m.items = make([]*checkItem, len(boxes))
	handles := make([]progress.CheckboxHandle, len(boxes))
	for i, b := range boxes {
		m.items[i] = &checkItem{index: b.Index}
		handles[i] = m.items[i]
	}
	m.tracker.Restore(handles)

	m.focusables = nil
	tree.Walk(func(n *render.Node) {
		if n.Focusable() {
			m.focusables = append(m.focusables, n)
		}
	})
	m.cursor = 0
	m.viewport.GotoTop()
	m.refresh()
}

func (m Model) focused() *render.Node {
	if m.cursor < 0 || m.cursor >= len(m.focusables) {
		return nil
	}
	return m.focusables[m.cursor]
}

func (m Model) isChecked(index int) bool {
	if index < 0 || index >= len(m.items) {
		return false
	}
	return m.items[index].checked
}

func (m *Model) toggleFocused() {
	n := m.focused()
	if n == nil || n.Kind != render.KindCheckbox || n.Index >= len(m.items) {
		return
	}
	item := m.items[n.Index]
	item.checked = !item.checked
	m.tracker.Toggle(item.index, item.checked)
	m.refresh()
}

// trigger dispatches the focused node's action of the given kind.
func (m Model) trigger(kind render.ActionKind) tea.Cmd {
	n := m.focused()
	if n == nil {
		return nil
	}
	action, ok := n.Action(kind)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return action.Msg()
	}
}

// refresh redraws the content and keeps the focused node in view.
func (m *Model) refresh() {
	if m.tree == nil {
		return
	}
	view := &DayView{Focused: m.focused(), Checked: m.isChecked, Width: m.viewport.Width}
	content, line := view.Render(m.tree)
	m.viewport.SetContent(content)

	if line < 0 || m.viewport.Height <= 0 {
		return
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *Model) openDetails(msg model.ShowDetailsMsg) {
	m.details.open = true
	m.details.title = msg.Title
	m.details.activity = msg.Activity
	m.top = model.ModalDetails
}

// openMap shows the map dialog. The map is built on first use; later opens
// replace the previous pin.
func (m *Model) openMap(msg model.ShowOnMapMsg) {
	m.mapDlg.open = true
	m.mapDlg.title = mapTitlePrefix + msg.Title

	center := mapview.LatLng{Lat: m.cfg.Map.CenterLat, Lng: m.cfg.Map.CenterLng}
	if m.mapWidget == nil {
		m.mapWidget = mapview.New(center, m.cfg.Map.Zoom, m.termCapabilities)
		m.mapWidget.AddTileLayer(m.cfg.Map.TileURL, m.cfg.Map.Attribution)
		m.logger.Debug("map created", "zoom", m.cfg.Map.Zoom)
	} else {
		m.mapWidget.ClearMarkers()
	}
	m.mapWidget.AddMarker(center.Lat, center.Lng).BindLabel(msg.Title)
	m.top = model.ModalMap
}

// closeModal is the single close transition shared by every close trigger.
func (m *Model) closeModal(which model.Modal) {
	switch which {
	case model.ModalDetails:
		m.details.open = false
	case model.ModalMap:
		m.mapDlg.open = false
	}

	switch {
	case m.mapDlg.open:
		m.top = model.ModalMap
	case m.details.open:
		m.top = model.ModalDetails
	default:
		m.top = model.ModalNone
	}
}

func (m *Model) closeAll() {
	m.closeModal(model.ModalDetails)
	m.closeModal(model.ModalMap)
}

func (m Model) modalWidth() int {
	return max(min(m.width-4, modalMaxWidth), 20)
}

func (m Model) mapHeight() int {
	return max(m.height-16, 6)
}

// modalBox renders the topmost dialog.
func (m Model) modalBox() string {
	width := m.modalWidth()
	inner := modalInnerWidth(width)
	switch m.top {
	case model.ModalDetails:
		return modalBox(m.details.title, m.details.body(inner), width)
	case model.ModalMap:
		return modalBox(m.mapDlg.title, mapBody(m.mapWidget, inner, m.mapHeight()), width)
	}
	return ""
}

func (m Model) modalBounds() rect {
	box := m.modalBox()
	return centered(lipgloss.Width(box), lipgloss.Height(box), m.width, m.height-2)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	if m.top != model.ModalNone {
		return lipgloss.JoinVertical(lipgloss.Left,
			overlay(m.modalBox(), m.width, m.height-2),
			RenderHelp(m.top, m.width),
		)
	}

	header := renderHeader(m.headerParts(), m.width)
	tabs := renderTabs(m.store.CurrentDay(), m.dayCount(), m.width)
	footer := RenderHelp(m.top, m.width)

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	if m.error != "" {
		errorBanner := ErrorStyle.Width(m.width).Render("Error: " + m.error)
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs, errorBanner, content, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)
}

func (m Model) headerParts() []string {
	day := m.store.Day(m.store.CurrentDay())
	if day == nil {
		return nil
	}
	return []string{util.DayLabel(m.store.CurrentDay()), util.TruncateString(day.Route, max(m.width/2, 10))}
}

func renderTabs(current, count, width int) string {
	var tabStrings []string
	for i := 0; i < count; i++ {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if i == current {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(util.DayLabel(i)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("viaggio")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func loadDocumentCmd(store *itinerary.Store, source string) tea.Cmd {
	return func() tea.Msg {
		doc, err := store.Load(context.Background(), source)
		if err != nil {
			return model.DocumentFailedMsg{Err: err}
		}
		return model.DocumentLoadedMsg{Document: doc}
	}
}

func autosaveTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return model.ProgressTickMsg{}
	})
}

// flushCmd snapshots completion state on the event loop and writes it in
// the background.
func (m Model) flushCmd() tea.Cmd {
	snapshot, err := m.tracker.Snapshot()
	if err != nil {
		return func() tea.Msg { return model.ProgressFlushedMsg{Err: err} }
	}
	tracker := m.tracker
	return func() tea.Msg {
		return model.ProgressFlushedMsg{Err: tracker.Write(context.Background(), snapshot)}
	}
}
