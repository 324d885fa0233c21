package api

import (
	"encoding/json"
	"net/http"

	"clinic-appointments/appointment"
)

type getAppointmentsResponse struct {
	Appointments []appointment.Appointment `json:"appointments"`
}

type validationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

func (a *API) getAppointments(w http.ResponseWriter, _ *http.Request) {
	a.Response(w, http.StatusOK, getAppointmentsResponse{
		Appointments: a.store.All(),
	})
}

func (a *API) getAppointment(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.store.FindByID(pathID(r))
	if !ok {
		a.Response(w, http.StatusNotFound, noticeNotFound)
		return
	}
	a.Response(w, http.StatusOK, rec)
}

// decodeFields reads and validates a request body. It writes the error
// response itself and reports whether the caller may continue.
func (a *API) decodeFields(w http.ResponseWriter, r *http.Request) (appointment.Fields, bool) {
	var f appointment.Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return f, false
	}
	f = f.Normalize()
	if res := appointment.Validate(f); !res.Valid {
		a.observeInvalid(res)
		a.Response(w, http.StatusBadRequest, validationErrorResponse{Errors: res.Errors})
		return f, false
	}
	return f, true
}

func (a *API) createAppointment(w http.ResponseWriter, r *http.Request) {
	f, ok := a.decodeFields(w, r)
	if !ok {
		return
	}

	rec, err := a.store.Add(r.Context(), f)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, noticeSaveFailure)
		return
	}
	a.Response(w, http.StatusCreated, rec)
}

func (a *API) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, ok := a.store.FindByID(id); !ok {
		a.Response(w, http.StatusNotFound, noticeNotFound)
		return
	}
	f, ok := a.decodeFields(w, r)
	if !ok {
		return
	}

	rec, found, err := a.store.Update(r.Context(), id, f.Patch())
	switch {
	case err != nil:
		a.Response(w, http.StatusInternalServerError, noticeSaveFailure)
	case !found:
		a.Response(w, http.StatusNotFound, noticeNotFound)
	default:
		a.Response(w, http.StatusOK, rec)
	}
}

func (a *API) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	removed, err := a.store.Remove(r.Context(), pathID(r))
	switch {
	case err != nil:
		a.Response(w, http.StatusInternalServerError, noticeSaveFailure)
	case !removed:
		a.Response(w, http.StatusNotFound, noticeNotFound)
	default:
		a.Response(w, http.StatusNoContent, nil)
	}
}
