// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns free text into short ASCII segments safe for object
// keys and download file names.
package slug

import (
	"regexp"
	"strings"
)

// MaxLength caps a generated segment.
const MaxLength = 40

var (
	// separators become hyphens before anything else is dropped.
	separators = regexp.MustCompile(`[\s_/.:|]+`)
	// unsafe matches anything that isn't a letter, digit or hyphen.
	unsafe = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from s. Characters outside ASCII letters and
// digits are dropped, so a name written only in Hangul yields "".
// Example: "Choco's 3rd Birthday!" → "chocos-3rd-birthday"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = unsafe.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

// GenerateOr is Generate with a fallback for input that slugs to nothing.
func GenerateOr(s, fallback string) string {
	if out := Generate(s); out != "" {
		return out
	}
	return fallback
}
