package wizard

import (
	"strings"
	"testing"

	"github.com/Simplici0/paintpro/internal/models"
)

func validContact() models.ContactInfo {
	return models.ContactInfo{
		ProjectName: "Spring refresh",
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "(206) 555-0142",
		Address:     "400 Broad St, Seattle, Washington, 98109",
	}
}

func TestValidateContactAcceptsValidInput(t *testing.T) {
	if errs := ValidateContact(validContact()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateContactRequiresEveryField(t *testing.T) {
	errs := ValidateContact(models.ContactInfo{ProjectName: "   "})

	want := map[string]string{
		"projectName": "Project Name is required",
		"address":     "Address is required",
		"fullName":    "Full Name is required",
		"email":       "Email is required",
		"phone":       "Phone is required",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), errs)
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Fatalf("errs[%s] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateContactFormats(t *testing.T) {
	cases := []struct {
		name  string
		email string
		phone string
		want  []string
	}{
		{"dotted phone", "a.b+c@mail.co", "206.555.0142", nil},
		{"plain digits", "ada@example.com", "2065550142", nil},
		{"bad email", "ada@example", "206-555-0142", []string{"email"}},
		{"bad phone", "ada@example.com", "555-0142", []string{"phone"}},
		{"both bad", "not-an-email", "phone", []string{"email", "phone"}},
	}
	for _, tc := range cases {
		c := validContact()
		c.Email = tc.email
		c.Phone = tc.phone

		errs := ValidateContact(c)
		if len(errs) != len(tc.want) {
			t.Fatalf("%s: errors = %v, want fields %v", tc.name, errs, tc.want)
		}
		for _, field := range tc.want {
			if errs[field] == "" {
				t.Fatalf("%s: missing error for %s in %v", tc.name, field, errs)
			}
		}
	}
}

func TestValidateRooms(t *testing.T) {
	if errs := ValidateRooms(0); errs[FieldRooms] != "Please add at least one room" {
		t.Fatalf("unexpected rooms errors: %v", errs)
	}
	if errs := ValidateRooms(2); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestNextBlocksOnValidationErrors(t *testing.T) {
	step, errs := Next(StepContact, ContactValidator(models.ContactInfo{}))
	if step != StepContact {
		t.Fatalf("step advanced despite errors: %v", step)
	}
	if len(errs) == 0 {
		t.Fatalf("expected field errors")
	}

	step, errs = Next(StepContact, ContactValidator(validContact()))
	if step != StepRooms || errs != nil {
		t.Fatalf("Next = %v, %v; want rooms step", step, errs)
	}

	step, errs = Next(StepRooms, RoomsValidator(0))
	if step != StepRooms || errs[FieldRooms] == "" {
		t.Fatalf("rooms step advanced with no rooms: %v %v", step, errs)
	}

	step, _ = Next(StepRooms, RoomsValidator(1))
	if step != StepSummary {
		t.Fatalf("Next = %v, want summary", step)
	}

	step, _ = Next(StepSummary, nil)
	if step != StepSummary {
		t.Fatalf("summary should be terminal, got %v", step)
	}
}

func TestNextInvokesInjectedValidator(t *testing.T) {
	calls := 0
	v := ValidatorFunc(func() FieldErrors {
		calls++
		return FieldErrors{"address": "Address is required"}
	})

	if step, _ := Next(StepContact, v); step != StepContact {
		t.Fatalf("expected to stay on contact step, got %v", step)
	}
	if calls != 1 {
		t.Fatalf("validator called %d times, want 1", calls)
	}
}

func TestBack(t *testing.T) {
	if Back(StepSummary) != StepRooms || Back(StepRooms) != StepContact || Back(StepContact) != StepContact {
		t.Fatalf("unexpected Back transitions")
	}
	if Back(Step(9)) != StepContact {
		t.Fatalf("invalid step should fall back to contact")
	}
}

func TestFieldErrorsErrorIsSorted(t *testing.T) {
	errs := FieldErrors{"phone": "bad", "email": "bad"}
	if got := errs.Error(); !strings.HasPrefix(got, "email: bad") {
		t.Fatalf("Error() = %q", got)
	}
	if StepRooms.String() != "rooms" {
		t.Fatalf("unexpected step name %q", StepRooms.String())
	}
}
