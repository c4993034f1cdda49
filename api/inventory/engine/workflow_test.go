package engine

import "testing"

func TestAdvanceForwardSteps(t *testing.T) {
	valid := [][2]Step{
		{StepContext, StepImported},
		{StepImported, StepTemplate},
		{StepTemplate, StepResult},
	}
	for _, v := range valid {
		if err := Advance(v[0], v[1]); err != nil {
			t.Errorf("Advance(%s, %s): unexpected error %v", v[0], v[1], err)
		}
	}
}

func TestAdvanceRejectsSkipsAndBackwards(t *testing.T) {
	invalid := [][2]Step{
		{StepContext, StepTemplate}, // skip
		{StepContext, StepResult},
		{StepImported, StepContext}, // backwards
		{StepTemplate, StepTemplate}, // no-op
	}
	for _, v := range invalid {
		if err := Advance(v[0], v[1]); err == nil {
			t.Errorf("Advance(%s, %s): expected an error", v[0], v[1])
		}
	}
}

func TestAdvanceTerminalStep(t *testing.T) {
	if err := Advance(StepResult, StepResult+1); err == nil {
		t.Error("StepResult must be terminal")
	}
}

func TestAdvanceInvalidCurrent(t *testing.T) {
	if err := Advance(0, StepContext); err == nil {
		t.Error("expected an error for a current step outside the wizard")
	}
	if err := Advance(9, 10); err == nil {
		t.Error("expected an error for a current step outside the wizard")
	}
}
