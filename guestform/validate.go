// Package guestform holds the walk-in guest intake form: field validation, add-on toggles
// and the live price shown while staff fill it in.
package guestform

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"hotel-frontdesk/models"
)

const (
	MinNights         = 1
	MaxNights         = 30
	nationalIDLength  = 13
	minPassportLength = 6
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// FieldErrors maps a field's JSON name to a message.
type FieldErrors map[string]string

// ErrInvalid is returned by Submit when validation fails.
var ErrInvalid = errors.New("guest form has invalid fields")

var validate = newValidator()

type stay struct {
	models.GuestInfo
	Nights int `json:"nights" validate:"min=1,max=30"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(idNumberRule, models.GuestInfo{})
	return v
}

// idNumberRule checks the document number against the chosen document type.
func idNumberRule(sl validator.StructLevel) {
	g := sl.Current().Interface().(models.GuestInfo)
	if g.IDNumber == "" {
		return
	}
	switch g.IDType {
	case models.IDTypeNationalID:
		if len(digitsOnly(g.IDNumber)) != nationalIDLength {
			sl.ReportError(g.IDNumber, "idNumber", "IDNumber", "nationalid", "")
		}
	case models.IDTypePassport:
		if len(strings.TrimSpace(g.IDNumber)) < minPassportLength {
			sl.ReportError(g.IDNumber, "idNumber", "IDNumber", "passport", "")
		}
	}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func trimGuest(g models.GuestInfo) models.GuestInfo {
	return models.GuestInfo{
		FirstName: strings.TrimSpace(g.FirstName),
		LastName:  strings.TrimSpace(g.LastName),
		Phone:     strings.TrimSpace(g.Phone),
		IDType:    models.IDType(strings.ToUpper(strings.TrimSpace(string(g.IDType)))),
		IDNumber:  strings.TrimSpace(g.IDNumber),
	}
}

// Sanitize returns the payload form of a guest: trimmed, national ids reduced to digits,
// passport numbers upper-cased.
func Sanitize(g models.GuestInfo) models.GuestInfo {
	out := trimGuest(g)
	switch out.IDType {
	case models.IDTypeNationalID:
		out.IDNumber = digitsOnly(out.IDNumber)
	case models.IDTypePassport:
		out.IDNumber = strings.ToUpper(out.IDNumber)
	}
	return out
}

// ValidateGuest checks a guest on its own. Surrounding whitespace is ignored.
func ValidateGuest(g models.GuestInfo) FieldErrors {
	return collect(validate.Struct(trimGuest(g)))
}

// ValidateStay checks a guest and the number of nights.
func ValidateStay(g models.GuestInfo, nights int) FieldErrors {
	return collect(validate.Struct(stay{GuestInfo: trimGuest(g), Nights: nights}))
}

func collect(err error) FieldErrors {
	out := FieldErrors{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

var fieldLabels = map[string]string{
	"firstName": "First name",
	"lastName":  "Last name",
	"phone":     "Phone number",
	"idType":    "ID type",
	"idNumber":  "ID number",
	"nights":    "Nights",
}

func message(field, tag string) string {
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}
	switch tag {
	case "required":
		return label + " is required"
	case "phone":
		return "Phone number may only contain digits, spaces, +, - and parentheses"
	case "oneof":
		return "Select passport or national ID"
	case "nationalid":
		return "National ID must be exactly 13 digits"
	case "passport":
		return "Passport number must be at least 6 characters"
	case "min", "max":
		return "Nights must be between 1 and 30"
	default:
		return label + " is invalid"
	}
}
