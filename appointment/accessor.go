package appointment

import (
	"context"
	"sync"

	"clinic-appointments/logging"
	"clinic-appointments/metrics"
)

// Persistence is what the Store writes through to after every mutation.
type Persistence interface {
	Save(ctx context.Context, records []Appointment) error
	Load(ctx context.Context) ([]Appointment, error)
}

// Store is the in-memory ordered collection of appointments. It is the source
// of truth during a session and persists the whole collection after each
// mutation.
type Store struct {
	mu      sync.RWMutex
	records []Appointment
	ids     IDGenerator
	persist Persistence
	log     *logging.Logger
	metrics *metrics.Metrics
}

func NewStore(persist Persistence, ids IDGenerator, log *logging.Logger, m *metrics.Metrics) *Store {
	if ids == nil {
		ids = UUIDs{}
	}
	if log == nil {
		log = logging.Default()
	}
	return &Store{
		records: []Appointment{},
		ids:     ids,
		persist: persist,
		log:     log,
		metrics: m,
	}
}
