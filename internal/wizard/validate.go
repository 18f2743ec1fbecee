package wizard

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Simplici0/paintpro/internal/models"
)

const (
	msgInvalidEmail = "Please enter a valid email address"
	msgInvalidPhone = "Please enter a valid phone number (XXX-XXX-XXXX)"
	msgNoRooms      = "Please add at least one room"

	// FieldRooms keys the room-count error in FieldErrors.
	FieldRooms = "rooms"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
)

// FieldErrors maps a field name to a user-facing message. Empty means valid.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Validator is the contract a step's form hands to the navigator.
type Validator interface {
	Validate() FieldErrors
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func() FieldErrors

func (f ValidatorFunc) Validate() FieldErrors { return f() }

// NormalizeContact trims surrounding whitespace from every field.
func NormalizeContact(c models.ContactInfo) models.ContactInfo {
	return models.ContactInfo{
		ProjectName: strings.TrimSpace(c.ProjectName),
		FullName:    strings.TrimSpace(c.FullName),
		Email:       strings.TrimSpace(c.Email),
		Phone:       strings.TrimSpace(c.Phone),
		Address:     strings.TrimSpace(c.Address),
	}
}

// ValidateContact checks the contact step. Keys match the JSON field names.
func ValidateContact(c models.ContactInfo) FieldErrors {
	c = NormalizeContact(c)
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ProjectName, required("Project Name")),
		validation.Field(&c.Address, required("Address")),
		validation.Field(&c.FullName, required("Full Name")),
		validation.Field(&c.Email, required("Email"), validation.Match(emailPattern).Error(msgInvalidEmail)),
		validation.Field(&c.Phone, required("Phone"), validation.Match(phonePattern).Error(msgInvalidPhone)),
	)
	return toFieldErrors(err)
}

// ValidateRooms checks the rooms step.
func ValidateRooms(count int) FieldErrors {
	if count > 0 {
		return nil
	}
	return FieldErrors{FieldRooms: msgNoRooms}
}

func ContactValidator(c models.ContactInfo) Validator {
	return ValidatorFunc(func() FieldErrors { return ValidateContact(c) })
}

func RoomsValidator(count int) Validator {
	return ValidatorFunc(func() FieldErrors { return ValidateRooms(count) })
}

func required(label string) validation.Rule {
	return validation.Required.Error(label + " is required")
}

func toFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for field, fieldErr := range verrs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
