package appointment

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	nationalIDPattern = regexp.MustCompile(`^[0-9]{8}[A-Za-z]$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{9}$`)
)

// Field names as used by the form, the JSON API and Result.Errors.
const (
	FieldDate       = "date"
	FieldTime       = "time"
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldNationalID = "nationalId"
	FieldPhone      = "phone"
	FieldBirthDate  = "birthDate"
	FieldNotes      = "notes"
)

var messages = map[string]string{
	FieldDate:       "must select a date",
	FieldTime:       "must select a time",
	FieldFirstName:  "first name must be at least 2 characters",
	FieldLastName:   "last name must be at least 2 characters",
	FieldNationalID: "national ID must be 8 digits followed by a letter",
	FieldPhone:      "phone must be exactly 9 digits",
	FieldBirthDate:  "must select a birth date",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("trimmedmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
	must("nationalid", func(fl validator.FieldLevel) bool {
		return nationalIDPattern.MatchString(fl.Field().String())
	})
	must("phone9", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Result is the outcome of one validation pass.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// Validate checks every field independently and reports one message per
// failing field. Notes are never checked.
func Validate(f Fields) Result {
	res := Result{Valid: true, Errors: map[string]string{}}

	err := validate.Struct(f)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable through a programming error in the tags above.
		panic(err)
	}
	res.Valid = false
	for _, fe := range verrs {
		res.Errors[fe.Field()] = messages[fe.Field()]
	}
	return res
}

// FieldOrder lists the validated fields in form order.
var FieldOrder = []string{
	FieldDate, FieldTime, FieldFirstName, FieldLastName,
	FieldNationalID, FieldPhone, FieldBirthDate,
}
