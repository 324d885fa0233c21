package appointment

import (
	"context"
	"fmt"
	"slices"
)

// Load replaces the in-memory collection with the persisted one.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.metrics.SetRecords(len(s.records))
	return nil
}

// Add appends a new appointment with a fresh id.
func (s *Store) Add(ctx context.Context, f Fields) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.NewID()
	for s.indexOf(id) >= 0 {
		id = s.ids.NewID()
	}
	a := Appointment{ID: id, Fields: f}

	prev := s.records
	s.records = append(slices.Clip(prev), a)
	if err := s.save(ctx); err != nil {
		s.records = prev
		s.metrics.ObserveMutation("add", "error")
		return Appointment{}, err
	}

	s.metrics.ObserveMutation("add", "ok")
	s.metrics.SetRecords(len(s.records))
	s.log.Info("appointment created", "id", a.ID)
	return a, nil
}

// Update merges p over the appointment with the given id. found is false when
// no such appointment exists; the collection is then left untouched.
func (s *Store) Update(ctx context.Context, id string, p Patch) (a Appointment, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.metrics.ObserveMutation("update", "not_found")
		return Appointment{}, false, nil
	}

	old := s.records[i]
	updated := Appointment{ID: old.ID, Fields: p.apply(old.Fields)}
	s.records[i] = updated
	if err := s.save(ctx); err != nil {
		s.records[i] = old
		s.metrics.ObserveMutation("update", "error")
		return Appointment{}, true, err
	}

	s.metrics.ObserveMutation("update", "ok")
	s.log.Info("appointment updated", "id", id)
	return updated, true, nil
}

// Remove deletes the appointment with the given id. Removing an unknown id is
// a no-op reported as removed=false.
func (s *Store) Remove(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.metrics.ObserveMutation("remove", "not_found")
		return false, nil
	}

	prev := s.records
	s.records = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.save(ctx); err != nil {
		s.records = prev
		s.metrics.ObserveMutation("remove", "error")
		return false, err
	}

	s.metrics.ObserveMutation("remove", "ok")
	s.metrics.SetRecords(len(s.records))
	s.log.Info("appointment deleted", "id", id)
	return true, nil
}

func (s *Store) FindByID(id string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Appointment{}, false
	}
	return s.records[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(a Appointment) bool { return a.ID == id })
}

func (s *Store) save(ctx context.Context) error {
	if err := s.persist.Save(ctx, s.records); err != nil {
		s.log.Error("write-through failed", "error", err)
		return err
	}
	return nil
}
