package progress

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

type memStore struct {
	values map[string]string
	getErr error
	puts   int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Put(_ context.Context, key, value string) error {
	s.values[key] = value
	s.puts++
	return nil
}

type fakeCheckbox struct {
	checked bool
	calls   int
}

func (c *fakeCheckbox) SetChecked(checked bool) {
	c.checked = checked
	c.calls++
}

func mount(n int) ([]*fakeCheckbox, []CheckboxHandle) {
	boxes := make([]*fakeCheckbox, n)
	handles := make([]CheckboxHandle, n)
	for i := range boxes {
		boxes[i] = &fakeCheckbox{checked: true}
		handles[i] = boxes[i]
	}
	return boxes, handles
}

func decodeFlat(t *testing.T, raw string) map[string]bool {
	t.Helper()
	var flat map[string]bool
	if err := json.Unmarshal([]byte(raw), &flat); err != nil {
		t.Fatalf("stored value is not a flat JSON object: %v", err)
	}
	return flat
}

func TestRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	tracker := NewTracker(store, "", nil)
	if err := tracker.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tracker.Toggle(0, true)
	tracker.Toggle(2, true)
	if err := tracker.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	fresh := NewTracker(store, "", nil)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	boxes, handles := mount(4)
	fresh.Restore(handles)

	want := []bool{true, false, true, false}
	for i, b := range boxes {
		if b.checked != want[i] {
			t.Errorf("item %d checked = %v, want %v", i, b.checked, want[i])
		}
		if b.calls != 1 {
			t.Errorf("item %d SetChecked called %d times", i, b.calls)
		}
	}
}

func TestRestoreThenFlushIsIdempotent(t *testing.T) {
	tests := []struct {
		name    string
		persist string
	}{
		{"empty", `{}`},
		{"some checked", `{"0":true,"3":true}`},
		{"explicit false", `{"1":false,"2":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.values[DefaultKey] = tt.persist
			ctx := context.Background()

			tracker := NewTracker(store, DefaultKey, nil)
			if err := tracker.Load(ctx); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			_, handles := mount(5)
			tracker.Restore(handles)
			if err := tracker.Flush(ctx); err != nil {
				t.Fatalf("Flush failed: %v", err)
			}

			got := decodeFlat(t, store.values[DefaultKey])
			want := decodeFlat(t, tt.persist)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("flushed %v, want %v", got, want)
			}
		})
	}
}

func TestFlushWritesFullState(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	tracker := NewTracker(store, "custom-key", nil)

	tracker.Toggle(1, true)
	if err := tracker.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	tracker.Toggle(4, true)
	tracker.Toggle(1, false)
	if err := tracker.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := tracker.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	got := decodeFlat(t, store.values["custom-key"])
	want := map[string]bool{"1": false, "4": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stored %v, want %v", got, want)
	}
	if store.puts != 3 {
		t.Errorf("expected 3 writes, got %d", store.puts)
	}
}

func TestLoadCorruptStateIsEmpty(t *testing.T) {
	for _, raw := range []string{`not json`, `null`, `{"0":"yes"}`, `[true]`} {
		store := newMemStore()
		store.values[DefaultKey] = raw

		tracker := NewTracker(store, "", nil)
		if err := tracker.Load(context.Background()); err != nil {
			t.Fatalf("Load(%q) returned error: %v", raw, err)
		}
		if got := tracker.Checked(); len(got) != 0 {
			t.Errorf("Load(%q) checked = %v, want none", raw, got)
		}

		// State stays writable after a corrupt load.
		tracker.Toggle(0, true)
		if !tracker.IsChecked(0) {
			t.Errorf("Load(%q): toggle did not stick", raw)
		}
	}
}

func TestLoadStorageError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk gone")

	tracker := NewTracker(store, "", nil)
	if err := tracker.Load(context.Background()); err == nil {
		t.Error("expected storage error to be returned")
	}
}

func TestToggleDoesNotPersist(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, "", nil)

	tracker.Toggle(3, true)
	if store.puts != 0 {
		t.Errorf("Toggle wrote to storage %d times", store.puts)
	}
	if !tracker.IsChecked(3) {
		t.Error("IsChecked(3) = false after toggle")
	}
}

func TestChecked(t *testing.T) {
	tracker := NewTracker(newMemStore(), "", nil)
	tracker.Toggle(5, true)
	tracker.Toggle(1, true)
	tracker.Toggle(3, false)

	if got, want := tracker.Checked(), []int{1, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Checked() = %v, want %v", got, want)
	}
}
