// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pawtune/internal/models"
)

// Validation limits for request fields.
const (
	maxSourceTextLen    = 20_000
	maxExtractLen       = 50_000
	maxSettingLen       = 200
	maxManualStyleLen   = 1_000
	maxCredentialLen    = 256
	maxReferenceImgSize = 6 << 20 // base64 characters per image

	smallBody = 1 << 20
	draftBody = 24 << 20 // up to three reference images
)

// validateDraft checks field sizes of a draft. It does not require a
// complete draft; models.GenerationOptions.Validate does that on submit.
func validateDraft(o *models.GenerationOptions) error {
	if o.Category != "" && !o.Category.Valid() {
		return &models.ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", o.Category)}
	}
	if utf8.RuneCountInString(o.SourceText) > maxSourceTextLen {
		return &models.ValidationError{Field: "sourceText", Message: "story is too long (max 20,000 characters)"}
	}
	settings := []struct{ field, value string }{
		{"musicSettings.genre", o.Music.Genre},
		{"musicSettings.mood", o.Music.Mood},
		{"musicSettings.instruments", o.Music.Instruments},
		{"musicSettings.tempo", o.Music.Tempo},
		{"visualSettings.lighting", o.Visual.Lighting},
		{"visualSettings.angle", o.Visual.Angle},
		{"visualSettings.background", o.Visual.Background},
		{"visualSettings.style", o.Visual.Style},
	}
	for _, s := range settings {
		if utf8.RuneCountInString(s.value) > maxSettingLen {
			return &models.ValidationError{Field: s.field, Message: "value is too long (max 200 characters)"}
		}
	}
	if utf8.RuneCountInString(o.ManualMusicStyle) > maxManualStyleLen {
		return &models.ValidationError{Field: "manualMusicStyle", Message: "override is too long (max 1,000 characters)"}
	}
	if utf8.RuneCountInString(o.ManualVisualStyle) > maxManualStyleLen {
		return &models.ValidationError{Field: "manualVisualStyle", Message: "override is too long (max 1,000 characters)"}
	}
	for i, img := range o.ReferenceImages {
		if len(img) > maxReferenceImgSize {
			return &models.ValidationError{Field: fmt.Sprintf("referenceImages[%d]", i), Message: "image is too large"}
		}
	}
	return nil
}

// validateExtract checks pasted text for narrative extraction.
func validateExtract(text string) error {
	if strings.TrimSpace(text) == "" {
		return &models.ValidationError{Field: "text", Message: "text to analyze is required"}
	}
	if utf8.RuneCountInString(text) > maxExtractLen {
		return &models.ValidationError{Field: "text", Message: "text is too long (max 50,000 characters)"}
	}
	return nil
}

// validateCredential checks a submitted API key.
func validateCredential(key string) error {
	if utf8.RuneCountInString(key) > maxCredentialLen {
		return &models.ValidationError{Field: "apiKey", Message: "API key is too long"}
	}
	if strings.ContainsAny(strings.TrimSpace(key), " \t\r\n") {
		return &models.ValidationError{Field: "apiKey", Message: "API key must not contain whitespace"}
	}
	return nil
}
