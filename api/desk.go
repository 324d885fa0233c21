package api

import (
	"context"
	"maps"
	"sync"

	"clinic-appointments/appointment"
	"clinic-appointments/metrics"
)

// Notices shown to the receptionist after an action.
const (
	noticeCreated     = "Appointment created"
	noticeUpdated     = "Appointment updated"
	noticeDeleted     = "Appointment deleted"
	noticeNotFound    = "Appointment not found"
	noticeSaveFailure = "Could not save appointments"
)

// Appointments is the record store the desk drives.
type Appointments interface {
	Add(ctx context.Context, f appointment.Fields) (appointment.Appointment, error)
	Update(ctx context.Context, id string, p appointment.Patch) (appointment.Appointment, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(id string) (appointment.Appointment, bool)
	All() []appointment.Appointment
	Len() int
}

// formMode is either creating or editing.
type formMode interface {
	isFormMode()
}

type creating struct{}

type editing struct {
	id string
}

func (creating) isFormMode() {}
func (editing) isFormMode()  {}

// Outcome reports what a form submission did.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeNotFound
	OutcomeFailed
)

// Desk owns the booking form: its mode, the values on screen, the field
// errors of the last validation pass and a one-shot notice.
type Desk struct {
	mu      sync.Mutex
	store   Appointments
	metrics *metrics.Metrics
	mode    formMode
	form    appointment.Fields
	errors  map[string]string
	notice  string
}

func NewDesk(store Appointments, m *metrics.Metrics) *Desk {
	return &Desk{
		store:   store,
		metrics: m,
		mode:    creating{},
		errors:  map[string]string{},
	}
}

// DeskView is a snapshot of the desk for rendering.
type DeskView struct {
	Editing   bool
	EditingID string
	Form      appointment.Fields
	Errors    map[string]string
	Notice    string
}

// Submit validates the normalized f and, when valid, creates or updates an
// appointment depending on the form mode. Rejected values stay on the form as
// typed.
func (d *Desk) Submit(ctx context.Context, f appointment.Fields) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw := f
	f = f.Normalize()
	res := appointment.Validate(f)
	d.errors = res.Errors
	if !res.Valid {
		d.form = raw
		for field := range res.Errors {
			d.metrics.ObserveValidationFailure(field)
		}
		return OutcomeInvalid, nil
	}

	switch m := d.mode.(type) {
	case editing:
		_, found, err := d.store.Update(ctx, m.id, f.Patch())
		if err != nil {
			d.form = raw
			d.notice = noticeSaveFailure
			return OutcomeFailed, err
		}
		if !found {
			d.mode = creating{}
			d.form = raw
			d.notice = noticeNotFound
			return OutcomeNotFound, nil
		}
		d.reset()
		d.notice = noticeUpdated
		return OutcomeUpdated, nil
	default:
		if _, err := d.store.Add(ctx, f); err != nil {
			d.form = raw
			d.notice = noticeSaveFailure
			return OutcomeFailed, err
		}
		d.reset()
		d.notice = noticeCreated
		return OutcomeCreated, nil
	}
}

// Edit loads the appointment into the form and switches to editing it.
func (d *Desk) Edit(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.store.FindByID(id)
	if !ok {
		d.notice = noticeNotFound
		return false
	}
	d.mode = editing{id: a.ID}
	d.form = a.Fields
	d.errors = map[string]string{}
	return true
}

// Delete removes a confirmed appointment. Deleting the appointment being
// edited drops the form back to creating.
func (d *Desk) Delete(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed, err := d.store.Remove(ctx, id)
	if err != nil {
		d.notice = noticeSaveFailure
		return false, err
	}
	if !removed {
		d.notice = noticeNotFound
		return false, nil
	}
	if m, ok := d.mode.(editing); ok && m.id == id {
		d.reset()
	}
	d.notice = noticeDeleted
	return true, nil
}

// Cancel leaves edit mode and clears the form.
func (d *Desk) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Notify sets the notice shown on the next render.
func (d *Desk) Notify(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notice = msg
}

// View returns the current state and consumes the pending notice.
func (d *Desk) View() DeskView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DeskView{
		Form:   d.form,
		Errors: maps.Clone(d.errors),
		Notice: d.notice,
	}
	if m, ok := d.mode.(editing); ok {
		v.Editing = true
		v.EditingID = m.id
	}
	d.notice = ""
	return v
}

func (d *Desk) reset() {
	d.mode = creating{}
	d.form = appointment.Fields{}
	d.errors = map[string]string{}
}
