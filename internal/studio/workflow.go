// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"errors"
	"fmt"
)

// Step is where a client is in the studio flow.
type Step string

const (
	StepInput        Step = "INPUT"
	StepConfirmation Step = "CONFIRMATION"
	StepGenerating   Step = "GENERATING"
	StepResults      Step = "RESULTS"
)

// Event moves a client between steps.
type Event string

const (
	EventSubmit  Event = "submit"  // options validated, show confirmation
	EventEdit    Event = "edit"    // back to the form, keeping the draft
	EventConfirm Event = "confirm" // start generating
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventReset   Event = "reset" // back to an empty form
	EventOpen    Event = "open"  // open a history item
)

// ErrInvalidTransition is returned for an event the current step does not accept.
var ErrInvalidTransition = errors.New("invalid workflow transition")

var transitions = map[Step]map[Event]Step{
	StepInput: {
		EventSubmit: StepConfirmation,
		EventOpen:   StepResults,
	},
	StepConfirmation: {
		EventEdit:    StepInput,
		EventConfirm: StepGenerating,
		EventOpen:    StepResults,
	},
	StepGenerating: {
		EventSucceed: StepResults,
		EventFail:    StepConfirmation,
	},
	StepResults: {
		EventEdit:  StepInput,
		EventReset: StepInput,
		EventOpen:  StepResults,
	},
}

// Transition returns the step reached from "from" on ev.
func Transition(from Step, ev Event) (Step, error) {
	next, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev, from)
	}
	return next, nil
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := transitions[s]
	return ok
}
