// Package prefs implements the preference store: a flat durable mapping of
// display settings, merged against shipped defaults and reapplied through a
// single callback whenever it changes.
package prefs

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"tastebook/internal/observability"
	"tastebook/internal/storage"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

// Defaults parses the shipped display defaults.
func Defaults() (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(defaultsYAML, &out); err != nil {
		return nil, fmt.Errorf("parse shipped defaults: %w", err)
	}
	return out, nil
}

// ChangeFunc receives the full effective configuration after every change.
type ChangeFunc func(map[string]any)

// Store holds the effective configuration: a flat mapping of string keys to
// strings or numbers. Unknown keys are preserved and passed through.
type Store struct {
	mu       sync.Mutex
	slots    *storage.Slots
	values   map[string]any
	onChange ChangeFunc
}

// New creates an uninitialized preference store over the given slots.
func New(slots *storage.Slots) *Store {
	return &Store{slots: slots, values: map[string]any{}}
}

// Initialize computes the effective configuration as defaults overridden by
// whatever was already persisted (persisted values win), persists the merged
// result, stores the callback, and invokes it once with the effective
// configuration.
func (s *Store) Initialize(ctx context.Context, defaults map[string]any, onChange ChangeFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]any, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range s.loadPersisted(ctx) {
		merged[k] = v
	}

	if err := s.persist(ctx, merged); err != nil {
		return err
	}
	s.values = merged
	s.onChange = onChange
	if s.onChange != nil {
		s.onChange(copyValues(s.values))
	}
	return nil
}

// SetPartial merges the given keys into the current configuration (new
// values win), persists, and invokes the callback with the full updated
// configuration.
func (s *Store) SetPartial(ctx context.Context, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := copyValues(s.values)
	for k, v := range partial {
		merged[k] = v
	}

	if err := s.persist(ctx, merged); err != nil {
		return err
	}
	s.values = merged
	if s.onChange != nil {
		s.onChange(copyValues(s.values))
	}
	return nil
}

// Values returns a copy of the effective configuration.
func (s *Store) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyValues(s.values)
}

// loadPersisted reads the persisted mapping; a missing or unparsable slot is
// recovered as empty.
func (s *Store) loadPersisted(ctx context.Context) map[string]any {
	data, ok, err := s.slots.Read(ctx, storage.SlotPreferences)
	if err != nil || !ok {
		return nil
	}
	var persisted map[string]any
	if err := json.Unmarshal(data, &persisted); err != nil {
		observability.NewStoreLogger().LogRecovered(ctx, storage.SlotPreferences, err)
		return nil
	}
	return persisted
}

func (s *Store) persist(ctx context.Context, values map[string]any) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.slots.Write(ctx, storage.SlotPreferences, data)
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
