// Package wizard sequences the four-step inquiry form: an explicit state
// machine over named steps with session-scoped storage behind an interface.
package wizard

// Step names the wizard screens in their strict order.
type Step string

const (
	StepFirst     Step = "first"
	StepHome      Step = "home"
	StepHomeowner Step = "homeowner"
	StepSignup    Step = "signup"
	StepDone      Step = "done"
)

var stepOrder = []Step{StepFirst, StepHome, StepHomeowner, StepSignup}

// ParseStep validates a step name from a URL.
func ParseStep(raw string) (Step, bool) {
	for _, step := range stepOrder {
		if string(step) == raw {
			return step, true
		}
	}
	return "", false
}

// Next returns the step after s, or StepDone past the last form step.
func (s Step) Next() Step {
	for i, step := range stepOrder {
		if step == s {
			if i+1 < len(stepOrder) {
				return stepOrder[i+1]
			}
			return StepDone
		}
	}
	return StepDone
}

func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return len(stepOrder)
}

// Before reports whether s comes before other in the wizard order.
func (s Step) Before(other Step) bool {
	return s.index() < other.index()
}
