package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"viaggio/internal/config"
	"viaggio/internal/itinerary"
	"viaggio/internal/mapview"
	"viaggio/internal/model"
	"viaggio/internal/progress"
	"viaggio/internal/render"

	tea "github.com/charmbracelet/bubbletea"
)

const testDocument = `{"itinerary":[
	{"date":"Jun 1","route":"Rome","morning":["Visit forum",{"name":"Pantheon","description":"Temple","details":{"hours":"9-19"}}],"afternoon_evening":{"accommodation":"Hotel A"}},
	{"date":"Jun 2","route":"Rome → Orvieto"}
]}`

type memStore struct {
	values map[string]string
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Put(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

type harness struct {
	m       Model
	cfg     *config.Config
	store   *itinerary.Store
	tracker *progress.Tracker
	kv      *memStore
}

func newHarness(t *testing.T, persisted string) *harness {
	t.Helper()

	path := filepath.Join(t.TempDir(), "italy.json")
	if err := os.WriteFile(path, []byte(testDocument), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	cfg := config.Default()
	cfg.Itinerary.Source = path

	kv := &memStore{values: make(map[string]string)}
	if persisted != "" {
		kv.values[progress.DefaultKey] = persisted
	}
	tracker := progress.NewTracker(kv, "", nil)
	if err := tracker.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store := itinerary.NewStore(nil)
	h := &harness{
		m:       New(cfg, store, tracker, nil, mapview.TerminalCapabilities{}),
		cfg:     cfg,
		store:   store,
		tracker: tracker,
		kv:      kv,
	}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	h.send(loadDocumentCmd(h.store, h.cfg.Itinerary.Source)())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func TestEndToEndDay(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)

	boxes := h.m.tree.Checkboxes()
	if len(boxes) != 1 || boxes[0].Text != "Visit forum" {
		t.Fatalf("checkboxes = %+v", boxes)
	}
	view := h.m.View()
	for _, want := range []string{"Visit forum", "Hotel A", render.HeadingMorning, render.HeadingLodging, "Jour 1", "Jour 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if strings.Contains(view, render.HeadingDinner) {
		t.Error("view should have no dinner section")
	}

	h.send(keySpace)
	if !h.tracker.IsChecked(0) {
		t.Fatal("space should check the focused item")
	}
	if !strings.Contains(h.m.View(), "[x]") {
		t.Error("checked item should render as [x]")
	}

	msg := h.m.flushCmd()()
	if flushed, ok := msg.(model.ProgressFlushedMsg); !ok || flushed.Err != nil {
		t.Fatalf("flush returned %+v", msg)
	}
	if got := h.kv.values[progress.DefaultKey]; got != `{"0":true}` {
		t.Errorf("stored %q", got)
	}
}

func TestRestoreOnMount(t *testing.T) {
	h := newHarness(t, `{"0":true}`)
	h.load(t)

	if len(h.m.items) != 1 || !h.m.items[0].checked {
		t.Fatalf("items = %+v", h.m.items)
	}

	h.send(keySpace)
	if h.tracker.IsChecked(0) {
		t.Error("second toggle should uncheck")
	}
}

func TestSelectDayBeforeLoad(t *testing.T) {
	h := newHarness(t, "")
	h.cfg.Itinerary.Days = 3

	h.send(keyRunes("2"))
	if h.store.CurrentDay() != 1 {
		t.Errorf("current day = %d, want 1", h.store.CurrentDay())
	}
	if h.m.tree == nil || h.m.tree.Kind != render.KindPlaceholder || h.m.tree.Text != render.TextDayNotFound {
		t.Errorf("tree = %+v, want not-found placeholder", h.m.tree)
	}
}

func TestLoadFailure(t *testing.T) {
	h := newHarness(t, "")
	h.send(model.DocumentFailedMsg{Err: errors.New("boom")})

	if h.m.tree.Text != render.TextLoadFailed {
		t.Errorf("tree = %+v, want load-failed placeholder", h.m.tree)
	}
	if !strings.Contains(h.m.View(), render.TextLoadFailed) {
		t.Error("view should show the load failure")
	}
}

func TestDayNavigation(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)

	h.send(keyRight)
	if h.store.CurrentDay() != 1 {
		t.Fatalf("current day = %d, want 1", h.store.CurrentDay())
	}
	if headers := h.m.tree.Find(render.KindHeader); len(headers) != 1 || headers[0].Label != "Jun 2" {
		t.Errorf("header = %+v", headers)
	}

	h.send(keyRight)
	if h.store.CurrentDay() != 1 {
		t.Error("should not step past the last day")
	}

	h.send(keyRunes("5"))
	if h.store.CurrentDay() != 1 {
		t.Error("day beyond the document should be ignored")
	}

	h.send(keyLeft)
	h.send(keyLeft)
	if h.store.CurrentDay() != 0 {
		t.Errorf("current day = %d, want 0", h.store.CurrentDay())
	}

	h.send(keyRunes("2"))
	if h.store.CurrentDay() != 1 {
		t.Error("digit should select the day")
	}
}

func TestActionsDispatchMessages(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)

	if cmd := h.send(keyRunes("d")); cmd != nil {
		t.Error("checkbox has no details action")
	}

	h.send(keyRunes("j"))
	cmd := h.send(keyRunes("d"))
	if cmd == nil {
		t.Fatal("expected a details command")
	}
	details, ok := cmd().(model.ShowDetailsMsg)
	if !ok || details.Title != "Pantheon" || details.Activity.Description != "Temple" {
		t.Fatalf("details msg = %+v", details)
	}

	cmd = h.send(keyRunes("m"))
	if cmd == nil {
		t.Fatal("expected a map command")
	}
	if onMap, ok := cmd().(model.ShowOnMapMsg); !ok || onMap.Title != "Pantheon" {
		t.Errorf("map msg = %+v", onMap)
	}

	h.send(details)
	if !h.m.details.open || h.m.top != model.ModalDetails {
		t.Fatal("details dialog should be open")
	}
	view := h.m.View()
	for _, want := range []string{"Pantheon", "Temple", "🕐 Horaires", "9-19"} {
		if !strings.Contains(view, want) {
			t.Errorf("details view is missing %q", want)
		}
	}
}

func TestCloseTriggersAreEquivalent(t *testing.T) {
	triggers := map[string]tea.Msg{
		"close key":     keyRunes("x"),
		"cancel key":    keyEsc,
		"click outside": tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
	}

	for name, trigger := range triggers {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, "")
			h.load(t)
			h.send(model.ShowDetailsMsg{Title: "Uffizi", Activity: model.Activity{Name: "Uffizi"}})

			h.send(trigger)
			if h.m.details.open || h.m.top != model.ModalNone {
				t.Errorf("dialog still open after %s", name)
			}
			if h.m.details.title != "Uffizi" {
				t.Error("closing should leave content in place")
			}
		})
	}
}

func TestClickInsideKeepsDialogOpen(t *testing.T) {
	h := newHarness(t, "")
	h.send(model.ShowDetailsMsg{Title: "Uffizi", Activity: model.Activity{Name: "Uffizi"}})

	b := h.m.modalBounds()
	h.send(tea.MouseMsg{X: b.x + b.w/2, Y: b.y + b.h/2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !h.m.details.open {
		t.Error("click inside the dialog should not close it")
	}
}

func TestCancelClosesBothDialogs(t *testing.T) {
	h := newHarness(t, "")
	h.send(model.ShowDetailsMsg{Title: "Uffizi"})
	h.send(model.ShowOnMapMsg{Title: "Uffizi"})

	h.send(keyRunes("x"))
	if h.m.mapDlg.open || !h.m.details.open || h.m.top != model.ModalDetails {
		t.Fatal("close key should close only the topmost dialog")
	}

	h.send(model.ShowOnMapMsg{Title: "Uffizi"})
	h.send(keyEsc)
	if h.m.mapDlg.open || h.m.details.open || h.m.top != model.ModalNone {
		t.Error("cancel should close both dialogs")
	}
}

func TestMapReusedWithSinglePin(t *testing.T) {
	h := newHarness(t, "")

	h.send(model.ShowOnMapMsg{Title: "Duomo"})
	widget := h.m.mapWidget
	if widget == nil {
		t.Fatal("map should be created on first open")
	}
	if len(widget.TileLayers()) != 1 {
		t.Errorf("expected 1 tile layer, got %d", len(widget.TileLayers()))
	}

	h.send(keyRunes("x"))
	h.send(model.ShowOnMapMsg{Title: "Hébergement"})

	if h.m.mapWidget != widget {
		t.Error("map should be reused")
	}
	if len(widget.TileLayers()) != 1 {
		t.Error("tile layer should be added once")
	}
	markers := widget.Markers()
	if len(markers) != 1 || markers[0].Label() != "Hébergement" {
		t.Fatalf("markers = %+v", markers)
	}
	if pos := markers[0].Position(); pos.Lat != h.cfg.Map.CenterLat || pos.Lng != h.cfg.Map.CenterLng {
		t.Errorf("pin at %+v, want map center", pos)
	}
	if h.m.mapDlg.title != "Carte - Hébergement" {
		t.Errorf("title = %q", h.m.mapDlg.title)
	}
	if !strings.Contains(h.m.View(), "Carte - Hébergement") {
		t.Error("view should show the map title")
	}
}

func TestModalCapturesNavigation(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)
	h.send(model.ShowDetailsMsg{Title: "Uffizi"})

	h.send(keyRight)
	if h.store.CurrentDay() != 0 {
		t.Error("day navigation should be ignored while a dialog is open")
	}
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, "")
	h.send(keyRunes("?"))
	if !h.m.showingHelp || !strings.Contains(h.m.View(), "Help") {
		t.Fatal("help should be shown")
	}
	h.send(keyEsc)
	if h.m.showingHelp {
		t.Error("esc should close help")
	}
}

func TestQuitFlushes(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)
	h.send(keySpace)

	if cmd := h.send(keyRunes("q")); cmd == nil {
		t.Fatal("quit should return a command")
	}
}

func TestAutosaveTick(t *testing.T) {
	h := newHarness(t, "")
	h.load(t)
	h.send(keySpace)

	if cmd := h.send(model.ProgressTickMsg{}); cmd == nil {
		t.Fatal("tick should schedule a write and the next tick")
	}

	h.send(model.ProgressFlushedMsg{Err: errors.New("disk full")})
	if !strings.Contains(h.m.View(), "disk full") {
		t.Error("write failure should be shown")
	}

	h.send(model.ProgressFlushedMsg{})
	if strings.Contains(h.m.View(), "disk full") {
		t.Error("a successful write should clear the failure banner")
	}
}
