package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"

	"clinic-appointments/appointment"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const (
	tableColumns   = 10
	excerptRunes   = 40
	excerptSuffix  = "…"
	formAnchor     = "/#appointment-form"
	confirmPrompt  = "Are you sure you want to delete this appointment?"
	pageTemplateID = "page.html"
)

type formInput struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
	Focus bool
}

type tableRow struct {
	Index   int
	ID      string
	Record  appointment.Fields
	Excerpt string
}

type pageData struct {
	Editing bool
	Notice  string
	Inputs  []formInput
	Rows    []tableRow
	Columns int
	Confirm *tableRow
	Notes   *tableRow
	Prompt  string
}

// excerpt cuts s to its first excerptRunes runes.
func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptRunes {
		return s
	}
	return string(r[:excerptRunes]) + excerptSuffix
}

func buildRows(records []appointment.Appointment) []tableRow {
	rows := make([]tableRow, len(records))
	for i, rec := range records {
		rows[i] = tableRow{
			Index:   i + 1,
			ID:      rec.ID,
			Record:  rec.Fields,
			Excerpt: excerpt(rec.Notes),
		}
	}
	return rows
}

type inputSpec struct {
	label string
	kind  string
}

var inputSpecs = map[string]inputSpec{
	appointment.FieldDate:       {"Date", "date"},
	appointment.FieldTime:       {"Time", "time"},
	appointment.FieldFirstName:  {"First name", "text"},
	appointment.FieldLastName:   {"Last name", "text"},
	appointment.FieldNationalID: {"National ID", "text"},
	appointment.FieldPhone:      {"Phone", "tel"},
	appointment.FieldBirthDate:  {"Birth date", "date"},
	appointment.FieldNotes:      {"Notes", "textarea"},
}

func fieldValue(f appointment.Fields, name string) string {
	switch name {
	case appointment.FieldDate:
		return f.Date
	case appointment.FieldTime:
		return f.Time
	case appointment.FieldFirstName:
		return f.FirstName
	case appointment.FieldLastName:
		return f.LastName
	case appointment.FieldNationalID:
		return f.NationalID
	case appointment.FieldPhone:
		return f.Phone
	case appointment.FieldBirthDate:
		return f.BirthDate
	case appointment.FieldNotes:
		return f.Notes
	}
	return ""
}

// buildInputs lays the form out in validation order with notes last, so the
// first field in error is also the first one on screen.
func buildInputs(v DeskView) []formInput {
	names := append(slices.Clone(appointment.FieldOrder), appointment.FieldNotes)
	inputs := make([]formInput, len(names))
	for i, name := range names {
		spec := inputSpecs[name]
		inputs[i] = formInput{
			Name:  name,
			Label: spec.label,
			Type:  spec.kind,
			Value: fieldValue(v.Form, name),
		}
	}

	focused := false
	for i := range inputs {
		inputs[i].Error = v.Errors[inputs[i].Name]
		if !focused && inputs[i].Error != "" {
			inputs[i].Focus = true
			focused = true
		}
	}
	if !focused && v.Editing {
		inputs[0].Focus = true
	}
	return inputs
}

// render writes the page with an optional confirmation prompt or notes
// overlay for the record with id.
func (a *API) render(w http.ResponseWriter, status int, confirm, notes *appointment.Appointment) {
	view := a.desk.View()
	data := pageData{
		Editing: view.Editing,
		Notice:  view.Notice,
		Inputs:  buildInputs(view),
		Rows:    buildRows(a.store.All()),
		Columns: tableColumns,
	}
	if confirm != nil {
		row := buildRows([]appointment.Appointment{*confirm})[0]
		data.Confirm = &row
		data.Prompt = confirmPrompt
	}
	if notes != nil {
		row := buildRows([]appointment.Appointment{*notes})[0]
		data.Notes = &row
	}

	var buf bytes.Buffer
	if err := a.page.ExecuteTemplate(&buf, pageTemplateID, data); err != nil {
		a.log.Error("render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
