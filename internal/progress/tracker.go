// Package progress tracks which checklist items have been ticked off and
// persists that state to a key-value store.
//
// Items are identified by their position in the rendered day, not by their
// text, and one index space is shared by every day.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"viaggio/internal/logging"
)

// DefaultKey is the storage key the completion state is written under.
const DefaultKey = "italy2025-progress"

// DefaultInterval is how often the state is flushed.
const DefaultInterval = 5 * time.Second

// Store is the key-value storage the tracker persists to.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// CheckboxHandle is a mounted checklist item whose state can be set.
type CheckboxHandle interface {
	SetChecked(checked bool)
}

// Tracker holds completion state in memory. It is safe for concurrent use.
type Tracker struct {
	store  Store
	key    string
	logger *logging.Logger

	mu    sync.Mutex
	state map[int]bool
}

// NewTracker creates a tracker with empty state. Call Load to read the
// persisted state.
func NewTracker(store Store, key string, logger *logging.Logger) *Tracker {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Tracker{
		store:  store,
		key:    key,
		logger: logger.With("component", "progress"),
		state:  make(map[int]bool),
	}
}

// Load replaces the in-memory state with the persisted one. A missing entry
// or one that cannot be parsed yields empty state. Only storage failures are
// returned.
func (t *Tracker) Load(ctx context.Context) error {
	raw, ok, err := t.store.Get(ctx, t.key)
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}

	state := make(map[int]bool)
	if ok {
		parsed, err := decode(raw)
		if err != nil {
			t.logger.Debug("ignoring unreadable progress", "key", t.key, "error", err.Error())
		} else {
			state = parsed
		}
	}

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	return nil
}

// Restore applies the state to freshly mounted items: item i is checked if
// index i is recorded as checked, unchecked otherwise.
func (t *Tracker) Restore(items []CheckboxHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, item := range items {
		item.SetChecked(t.state[i])
	}
}

// Toggle records the state of the item at index. It does not persist.
func (t *Tracker) Toggle(index int, checked bool) {
	t.mu.Lock()
	t.state[index] = checked
	t.mu.Unlock()
}

// IsChecked reports the recorded state of index.
func (t *Tracker) IsChecked(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state[index]
}

// Checked returns the checked indices in ascending order.
func (t *Tracker) Checked() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []int
	for i, checked := range t.state {
		if checked {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Snapshot serializes the full state as a flat JSON object keyed by index.
func (t *Tracker) Snapshot() ([]byte, error) {
	t.mu.Lock()
	flat := make(map[string]bool, len(t.state))
	for i, checked := range t.state {
		flat[strconv.Itoa(i)] = checked
	}
	t.mu.Unlock()

	data, err := json.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return data, nil
}

// Flush writes the complete current state under the tracker's key.
func (t *Tracker) Flush(ctx context.Context) error {
	data, err := t.Snapshot()
	if err != nil {
		return err
	}
	return t.Write(ctx, data)
}

// Write persists a snapshot taken earlier with Snapshot.
func (t *Tracker) Write(ctx context.Context, snapshot []byte) error {
	if err := t.store.Put(ctx, t.key, string(snapshot)); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return nil
}

func decode(raw string) (map[int]bool, error) {
	var flat map[string]bool
	if err := json.Unmarshal([]byte(raw), &flat); err != nil {
		return nil, err
	}
	state := make(map[int]bool, len(flat))
	for k, v := range flat {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		state[i] = v
	}
	return state, nil
}
