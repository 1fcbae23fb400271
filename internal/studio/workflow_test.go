// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"errors"
	"strings"
	"testing"

	"pawtune/internal/models"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    Step
		ev      Event
		want    Step
		wantErr bool
	}{
		{StepInput, EventSubmit, StepConfirmation, false},
		{StepInput, EventOpen, StepResults, false},
		{StepInput, EventConfirm, StepInput, true},
		{StepConfirmation, EventEdit, StepInput, false},
		{StepConfirmation, EventConfirm, StepGenerating, false},
		{StepConfirmation, EventSubmit, StepConfirmation, true},
		{StepGenerating, EventSucceed, StepResults, false},
		{StepGenerating, EventFail, StepConfirmation, false},
		{StepGenerating, EventConfirm, StepGenerating, true},
		{StepGenerating, EventOpen, StepGenerating, true},
		{StepResults, EventReset, StepInput, false},
		{StepResults, EventEdit, StepInput, false},
		{StepResults, EventOpen, StepResults, false},
		{StepResults, EventConfirm, StepResults, true},
		{Step("BOGUS"), EventSubmit, Step("BOGUS"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.ev), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("got err %v, want ErrInvalidTransition", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStepValid(t *testing.T) {
	for _, s := range []Step{StepInput, StepConfirmation, StepGenerating, StepResults} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Step("").Valid() {
		t.Error("empty step should be invalid")
	}
}

func TestSheet(t *testing.T) {
	r := *sampleResult()
	r.Category = models.CategoryRainbow
	r.FactSummary.Situation = "a | b"
	r.ImagePrompts[0].ImageURL = "https://cdn.example/intro.png"

	html, err := Sheet(r)
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	for _, want := range []string{
		"초코</h1>",
		models.CategoryRainbow.Label(),
		"Track 1: 초코야 / Choco",
		"Track 2: 초코 / Choco Run",
		"[Verse]<br>",
		"초코야</p>",
		"#초코 #dog",
		`href="https://cdn.example/intro.png"`,
		"a | b",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("sheet missing %q:\n%s", want, html)
		}
	}
}
