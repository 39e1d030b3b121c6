// Package store implements the record store: the single source of truth for
// all application records, durably persisted and observable.
package store

import (
	"context"
	"reflect"
	"sync"

	"tastebook/internal/models"
	"tastebook/internal/observability"
	"tastebook/internal/storage"

	"go.opentelemetry.io/otel/attribute"
)

// Observer receives a snapshot copy of the full collection after every
// mutation. Observers must not mutate the snapshot and must not call back
// into the store from the callback; delivery is synchronous and an observer
// is never reentered before its previous call returns.
type Observer interface {
	RecordsChanged(snapshot []models.Record)
}

// RecordStore holds the flat ordered collection of tagged records. Every
// mutation persists the whole collection as one unit and then broadcasts a
// snapshot to all observers in registration order.
type RecordStore struct {
	mu        sync.Mutex
	slots     *storage.Slots
	records   []models.Record
	observers []Observer
	logger    *observability.StoreLogger
}

// New loads the persisted collection. A missing or unparsable slot is
// recovered as an empty collection, never surfaced as an error.
func New(ctx context.Context, slots *storage.Slots) (*RecordStore, error) {
	s := &RecordStore{
		slots:  slots,
		logger: observability.NewStoreLogger(),
	}

	data, ok, err := slots.Read(ctx, storage.SlotRecords)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}

	records, err := models.DecodeRecords(data)
	if err != nil {
		s.logger.LogRecovered(ctx, storage.SlotRecords, err)
		return s, nil
	}
	s.records = records
	return s, nil
}

// Subscribe registers an observer. Repeat calls with the same observer are
// idempotent. The observer immediately receives the current snapshot.
// Observers of non-comparable dynamic types (func adapters) cannot be
// identity-checked and register unconditionally.
func (s *RecordStore) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reflect.TypeOf(o).Comparable() {
		for _, existing := range s.observers {
			if reflect.TypeOf(existing).Comparable() && existing == o {
				o.RecordsChanged(models.CloneAll(s.records))
				return
			}
		}
	}
	s.observers = append(s.observers, o)
	o.RecordsChanged(models.CloneAll(s.records))
}

// Snapshot returns a copy of the current collection.
func (s *RecordStore) Snapshot() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneAll(s.records)
}

// Size returns the current collection size.
func (s *RecordStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Create appends a record. The caller supplies a fully populated record with
// a freshly generated unique identifier. Returns the stored record.
func (s *RecordStore) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	ctx, span := observability.Tracer.Start(ctx, "store.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.kind", string(rec.RecordKind())),
		attribute.String("record.id", rec.RecordID()),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.Record{}, s.records...), rec)
	if err := s.persist(ctx, next); err != nil {
		s.logger.LogError(ctx, err, "create")
		return nil, err
	}
	s.records = next

	observability.StoreMutationsTotal.WithLabelValues("create", string(rec.RecordKind())).Inc()
	s.logger.LogMutation(ctx, "create", string(rec.RecordKind()), rec.RecordID(), len(s.records))
	s.broadcast()
	return rec, nil
}

// Update replaces the record with the same identifier, whole-record (no
// partial-field merge). A missing identifier fails with a not-found error and
// triggers no persistence and no notification.
func (s *RecordStore) Update(ctx context.Context, rec models.Record) error {
	ctx, span := observability.Tracer.Start(ctx, "store.Update")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.kind", string(rec.RecordKind())),
		attribute.String("record.id", rec.RecordID()),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.records {
		if existing.RecordID() == rec.RecordID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.NewNotFoundError("record", rec.RecordID())
	}

	next := append([]models.Record{}, s.records...)
	next[idx] = rec
	if err := s.persist(ctx, next); err != nil {
		s.logger.LogError(ctx, err, "update")
		return err
	}
	s.records = next

	observability.StoreMutationsTotal.WithLabelValues("update", string(rec.RecordKind())).Inc()
	s.logger.LogMutation(ctx, "update", string(rec.RecordKind()), rec.RecordID(), len(s.records))
	s.broadcast()
	return nil
}

// Delete removes all records matching the identifier (at most one in
// practice). It persists and notifies regardless of whether anything was
// removed, and reports whether the count actually decreased.
func (s *RecordStore) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := observability.Tracer.Start(ctx, "store.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("record.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.RecordID() != id {
			next = append(next, rec)
		}
	}
	removed := len(next) < len(s.records)

	if err := s.persist(ctx, next); err != nil {
		s.logger.LogError(ctx, err, "delete")
		return false, err
	}
	s.records = next

	observability.StoreMutationsTotal.WithLabelValues("delete", "").Inc()
	s.logger.LogMutation(ctx, "delete", "", id, len(s.records))
	s.broadcast()
	return removed, nil
}

// ResetAll clears the entire collection.
func (s *RecordStore) ResetAll(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "store.ResetAll")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, nil); err != nil {
		s.logger.LogError(ctx, err, "reset")
		return err
	}
	s.records = nil

	observability.StoreMutationsTotal.WithLabelValues("reset", "").Inc()
	s.logger.LogMutation(ctx, "reset", "", "", 0)
	s.broadcast()
	return nil
}

// persist serializes the prospective collection as one unit. A write failure
// is surfaced to the caller and the in-memory collection stays untouched.
func (s *RecordStore) persist(ctx context.Context, records []models.Record) error {
	data, err := models.EncodeRecords(records)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.slots.Write(ctx, storage.SlotRecords, data); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// broadcast delivers a fresh snapshot copy to every observer in registration
// order. Called with the mutex held; delivery is synchronous.
func (s *RecordStore) broadcast() {
	for _, o := range s.observers {
		o.RecordsChanged(models.CloneAll(s.records))
		observability.StoreNotificationsTotal.Inc()
	}
}
