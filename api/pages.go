package api

import (
	"net/http"

	"clinic-appointments/appointment"
)

func (a *API) index(w http.ResponseWriter, _ *http.Request) {
	a.render(w, http.StatusOK, nil, nil)
}

func formFields(r *http.Request) appointment.Fields {
	return appointment.Fields{
		Date:       r.PostFormValue(appointment.FieldDate),
		Time:       r.PostFormValue(appointment.FieldTime),
		FirstName:  r.PostFormValue(appointment.FieldFirstName),
		LastName:   r.PostFormValue(appointment.FieldLastName),
		NationalID: r.PostFormValue(appointment.FieldNationalID),
		Phone:      r.PostFormValue(appointment.FieldPhone),
		BirthDate:  r.PostFormValue(appointment.FieldBirthDate),
		Notes:      r.PostFormValue(appointment.FieldNotes),
	}
}

func (a *API) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	outcome, err := a.desk.Submit(r.Context(), formFields(r))
	if err != nil {
		a.log.Error("submit appointment", "error", err)
	}
	target := "/"
	if outcome == OutcomeInvalid || outcome == OutcomeFailed {
		target = formAnchor
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *API) cancelEdit(w http.ResponseWriter, r *http.Request) {
	a.desk.Cancel()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *API) editForm(w http.ResponseWriter, r *http.Request) {
	if !a.desk.Edit(r.FormValue("id")) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, formAnchor, http.StatusSeeOther)
}

func (a *API) confirmDelete(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.store.FindByID(r.FormValue("id"))
	if !ok {
		a.desk.Notify(noticeNotFound)
		a.render(w, http.StatusNotFound, nil, nil)
		return
	}
	a.render(w, http.StatusOK, &rec, nil)
}

func (a *API) deleteForm(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") == "yes" {
		if _, err := a.desk.Delete(r.Context(), r.FormValue("id")); err != nil {
			a.log.Error("delete appointment", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *API) showNotes(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.store.FindByID(r.FormValue("id"))
	if !ok {
		a.desk.Notify(noticeNotFound)
		a.render(w, http.StatusNotFound, nil, nil)
		return
	}
	a.render(w, http.StatusOK, nil, &rec)
}
