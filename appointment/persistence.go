package appointment

import (
	"context"
	"encoding/json"
	"fmt"

	"clinic-appointments/blob"
	"clinic-appointments/logging"
	"clinic-appointments/metrics"
)

// DefaultKey is the blob key the whole collection is stored under.
const DefaultKey = "citas"

// Persister serializes the full collection to a single blob key.
type Persister struct {
	blobs   blob.Store
	key     string
	log     *logging.Logger
	metrics *metrics.Metrics
}

func NewPersister(blobs blob.Store, key string, log *logging.Logger, m *metrics.Metrics) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logging.Default()
	}
	return &Persister{blobs: blobs, key: key, log: log, metrics: m}
}

// Save writes the ordered collection, replacing whatever was stored.
func (p *Persister) Save(ctx context.Context, records []Appointment) error {
	if records == nil {
		records = []Appointment{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal appointments: %w", err)
	}
	if err := p.blobs.Set(ctx, p.key, string(data)); err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}
	return nil
}

// Load reads the stored collection. A missing key, unparsable data or a value
// that is not a JSON array all yield an empty collection; only storage errors
// are returned.
func (p *Persister) Load(ctx context.Context) ([]Appointment, error) {
	raw, found, err := p.blobs.Get(ctx, p.key)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	if !found {
		return []Appointment{}, nil
	}

	var records []Appointment
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		p.log.Warn("stored appointments unreadable, starting empty", "key", p.key, "error", err)
		p.metrics.ObserveStorageFallback()
		return []Appointment{}, nil
	}
	if records == nil {
		// JSON null
		p.log.Warn("stored appointments are not a list, starting empty", "key", p.key)
		p.metrics.ObserveStorageFallback()
		return []Appointment{}, nil
	}
	return records, nil
}
