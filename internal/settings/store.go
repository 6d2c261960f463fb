// Package settings is the persisted key/value parameter store. Every key is
// namespaced under Prefix in the backing JSON file; callers use short keys.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Prefix namespaces every key this store writes.
const Prefix = "blackhole."

// Event describes a change. Reset is set when Clear removed every key.
type Event struct {
	Key   string
	Reset bool
}

// Listener receives change notifications after the change is persisted.
type Listener func(Event)

// Store is a JSON-file backed settings map with change notification.
type Store struct {
	mu        sync.Mutex
	path      string // empty: memory only
	values    map[string]json.RawMessage
	listeners map[int]Listener
	nextID    int
	log       *zap.Logger
}

// Open loads the store from path. A missing file yields an empty store; a
// malformed file is logged and ignored so every key falls back to its default.
func Open(path string, log *zap.Logger) (*Store, error) {
	s := newStore(path, log)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		s.log.Warn("settings file is malformed, using defaults", zap.String("path", path), zap.Error(err))
		s.values = make(map[string]json.RawMessage)
	}
	if s.values == nil {
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory(log *zap.Logger) *Store {
	return newStore("", log)
}

func newStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		path:      path,
		values:    make(map[string]json.RawMessage),
		listeners: make(map[int]Listener),
		log:       log,
	}
}

// Path returns the backing file, or "" for a memory store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) raw(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[Prefix+key]
	return v, ok
}

// Has reports whether key has a persisted value.
func (s *Store) Has(key string) bool {
	_, ok := s.raw(key)
	return ok
}

// Bool returns the value of key, or def when unset or not a boolean.
func (s *Store) Bool(key string, def bool) bool {
	raw, ok := s.raw(key)
	if !ok {
		return def
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Debug("malformed bool setting", zap.String("key", key), zap.ByteString("value", raw))
		return def
	}
	return v
}

// Float returns the value of key, or def when unset, not a number or not finite.
func (s *Store) Float(key string, def float64) float64 {
	raw, ok := s.raw(key)
	if !ok {
		return def
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		s.log.Debug("malformed number setting", zap.String("key", key), zap.ByteString("value", raw))
		return def
	}
	return v
}

// String returns the value of key, or def when unset or not a string.
func (s *Store) String(key string, def string) string {
	raw, ok := s.raw(key)
	if !ok {
		return def
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Debug("malformed string setting", zap.String("key", key), zap.ByteString("value", raw))
		return def
	}
	return v
}

// Set stores value under key, persists the store and notifies listeners.
// Setting a key to its current value is a no-op.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}

	s.mu.Lock()
	if old, ok := s.values[Prefix+key]; ok && string(old) == string(raw) {
		s.mu.Unlock()
		return nil
	}
	s.values[Prefix+key] = raw
	err = s.persistLocked()
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	notify(listeners, Event{Key: key})
	return nil
}

// Clear removes every namespaced key and notifies listeners with a reset event.
// Keys outside Prefix in a shared file are preserved.
func (s *Store) Clear() error {
	s.mu.Lock()
	for k := range s.values {
		if strings.HasPrefix(k, Prefix) {
			delete(s.values, k)
		}
	}
	err := s.persistLocked()
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	notify(listeners, Event{Reset: true})
	return nil
}

// Keys returns the short names of all persisted keys, sorted.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if strings.HasPrefix(k, Prefix) {
			keys = append(keys, strings.TrimPrefix(k, Prefix))
		}
	}
	sort.Strings(keys)
	return keys
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func notify(listeners []Listener, ev Event) {
	for _, l := range listeners {
		l(ev)
	}
}

// persistLocked writes the whole map through a temp file and rename.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("settings: mkdir %s: %w", filepath.Dir(s.path), err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("settings: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("settings: rename %s: %w", s.path, err)
	}
	return nil
}

// Copy returns a memory store holding the same namespaced values. Writes to
// the copy never reach s or its file.
func (s *Store) Copy() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := newStore("", s.log)
	for k, v := range s.values {
		if strings.HasPrefix(k, Prefix) {
			c.values[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}
