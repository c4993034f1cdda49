package engine

import "fmt"

// Step is the position of a session in the four stage wizard.
type Step int

const (
	StepContext  Step = 1 // depot context selected, nothing uploaded
	StepImported Step = 2 // mask uploaded and validated
	StepTemplate Step = 3 // template issued, awaiting counted quantities
	StepResult   Step = 4 // final file produced, terminal
)

func (s Step) String() string {
	switch s {
	case StepContext:
		return "context"
	case StepImported:
		return "imported"
	case StepTemplate:
		return "template"
	case StepResult:
		return "result"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Advance validates a workflow transition. Only single forward steps are
// allowed and StepResult is terminal; a failed stage leaves the session
// where it was, so there is nothing to roll back.
func Advance(current, next Step) error {
	if current < StepContext || current > StepResult {
		return fmt.Errorf("invalid current step %d", int(current))
	}
	if current == StepResult {
		return fmt.Errorf("session is complete, no further transitions")
	}
	if next != current+1 {
		return fmt.Errorf("invalid transition %s -> %s", current, next)
	}
	return nil
}
