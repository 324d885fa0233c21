package appointment

import "strings"

// Fields are the editable values of an appointment, as submitted by the form.
type Fields struct {
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	FirstName  string `json:"firstName" validate:"trimmedmin=2"`
	LastName   string `json:"lastName" validate:"trimmedmin=2"`
	NationalID string `json:"nationalId" validate:"nationalid"`
	Phone      string `json:"phone" validate:"phone9"`
	BirthDate  string `json:"birthDate" validate:"required"`
	Notes      string `json:"notes"`
}

// Appointment is a stored record. ID is assigned on creation and never changes.
type Appointment struct {
	ID string `json:"id"`
	Fields
}

// Normalize trims the free-typed fields the way the booking form does.
// Date, time and birth date come from pickers and are kept verbatim.
func (f Fields) Normalize() Fields {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.NationalID = strings.TrimSpace(f.NationalID)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

// Patch returns a patch that replaces every field with the values of f.
func (f Fields) Patch() Patch {
	return Patch{
		Date:       &f.Date,
		Time:       &f.Time,
		FirstName:  &f.FirstName,
		LastName:   &f.LastName,
		NationalID: &f.NationalID,
		Phone:      &f.Phone,
		BirthDate:  &f.BirthDate,
		Notes:      &f.Notes,
	}
}

// Patch carries the fields to overwrite on update. Nil fields are left as is.
type Patch struct {
	Date       *string
	Time       *string
	FirstName  *string
	LastName   *string
	NationalID *string
	Phone      *string
	BirthDate  *string
	Notes      *string
}

func (p Patch) apply(f Fields) Fields {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Date, p.Date)
	set(&f.Time, p.Time)
	set(&f.FirstName, p.FirstName)
	set(&f.LastName, p.LastName)
	set(&f.NationalID, p.NationalID)
	set(&f.Phone, p.Phone)
	set(&f.BirthDate, p.BirthDate)
	set(&f.Notes, p.Notes)
	return f
}
