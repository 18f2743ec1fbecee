// Package wizard validates the estimator's form steps and moves between them.
package wizard

import "fmt"

// Step is a position in the three-step estimator.
type Step int

const (
	StepContact Step = iota + 1
	StepRooms
	StepSummary
)

func (s Step) Valid() bool {
	return s >= StepContact && s <= StepSummary
}

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepRooms:
		return "rooms"
	case StepSummary:
		return "summary"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Next validates the current step and returns the following one. When the
// validator reports problems the step does not change and the errors are returned.
// The last step has nowhere to go and is returned as is.
func Next(current Step, v Validator) (Step, FieldErrors) {
	if !current.Valid() {
		return StepContact, nil
	}
	if v != nil {
		if errs := v.Validate(); len(errs) > 0 {
			return current, errs
		}
	}
	if current == StepSummary {
		return current, nil
	}
	return current + 1, nil
}

// Back returns the previous step. Going back never validates.
func Back(current Step) Step {
	if current <= StepContact || !current.Valid() {
		return StepContact
	}
	return current - 1
}
