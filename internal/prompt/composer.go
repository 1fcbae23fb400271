// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt turns generation options into the exact text sent to the
// model: the request body, the directive strings and the per-scene image
// prompt. Every function here is pure and never fails.
package prompt

import (
	"fmt"
	"strings"

	"pawtune/internal/models"
)

// noOverride is written when the user set no manual override.
const noOverride = "None"

// Request is a composed song package request.
type Request struct {
	Body              string
	SystemInstruction string
	MusicDirectives   string
	VisualDirectives  string
}

// MusicDirectives renders the music studio settings line.
func MusicDirectives(o models.GenerationOptions) string {
	m := o.Music
	return fmt.Sprintf("MUSIC_STUDIO_SETTINGS: [Genre: %s, Mood: %s, Instruments: %s, Tempo: %s]. MANUAL_OVERRIDE: %s",
		m.Genre, m.Mood, m.Instruments, m.Tempo, overrideOrNone(o.ManualMusicStyle))
}

// VisualDirectives renders the visual studio settings line. The same
// string is reused for every image prompt of the generation.
func VisualDirectives(o models.GenerationOptions) string {
	v := o.Visual
	return fmt.Sprintf("VISUAL_STUDIO_SETTINGS: [Lighting: %s, Angle: %s, Background: %s, Style: %s]. MANUAL_OVERRIDE: %s",
		v.Lighting, v.Angle, v.Background, v.Style, overrideOrNone(o.ManualVisualStyle))
}

// Compose builds the full request for a song package.
func Compose(o models.GenerationOptions) Request {
	music := MusicDirectives(o)
	visual := VisualDirectives(o)

	var b strings.Builder
	fmt.Fprintf(&b, "TASK_CATEGORY: %s\n\n", o.Category)
	fmt.Fprintf(&b, "SOURCE_TEXT (Pet Info):\n%s\n\n", o.SourceText)
	b.WriteString("USER_DIRECTIVES:\n")
	b.WriteString(music)
	b.WriteString("\n")
	b.WriteString(visual)
	b.WriteString("\n")

	return Request{
		Body:              b.String(),
		SystemInstruction: SystemInstruction,
		MusicDirectives:   music,
		VisualDirectives:  visual,
	}
}

func overrideOrNone(s string) string {
	if s == "" {
		return noOverride
	}
	return s
}
