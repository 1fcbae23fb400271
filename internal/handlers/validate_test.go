// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"

	"pawtune/internal/models"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(o *models.GenerationOptions)
		field string // "" means valid
	}{
		{"defaults", func(o *models.GenerationOptions) {}, ""},
		{"empty story allowed while drafting", func(o *models.GenerationOptions) { o.SourceText = "" }, ""},
		{"empty category allowed", func(o *models.GenerationOptions) { o.Category = "" }, ""},
		{"unknown category", func(o *models.GenerationOptions) { o.Category = "CATS" }, "category"},
		{"story too long", func(o *models.GenerationOptions) { o.SourceText = strings.Repeat("가", 20_001) }, "sourceText"},
		{"story at limit", func(o *models.GenerationOptions) { o.SourceText = strings.Repeat("가", 20_000) }, ""},
		{"genre too long", func(o *models.GenerationOptions) { o.Music.Genre = strings.Repeat("a", 201) }, "musicSettings.genre"},
		{"style too long", func(o *models.GenerationOptions) { o.Visual.Style = strings.Repeat("a", 201) }, "visualSettings.style"},
		{"music override too long", func(o *models.GenerationOptions) { o.ManualMusicStyle = strings.Repeat("a", 1_001) }, "manualMusicStyle"},
		{"visual override too long", func(o *models.GenerationOptions) { o.ManualVisualStyle = strings.Repeat("a", 1_001) }, "manualVisualStyle"},
		{"reference too large", func(o *models.GenerationOptions) {
			o.ReferenceImages = []string{"MQ==", strings.Repeat("A", maxReferenceImgSize+4)}
		}, "referenceImages[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := models.NewOptions(models.CategoryTogether)
			o.SourceText = "초코 이야기"
			tt.edit(&o)

			err := validateDraft(&o)
			if tt.field == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*models.ValidationError)
			if !ok {
				t.Fatalf("got %v, want *models.ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field: got %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidateExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", "초코를 찾습니다", false},
		{"blank", " \n\t", true},
		{"too long", strings.Repeat("a", 50_001), true},
		{"at limit", strings.Repeat("a", 50_000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateExtract(tt.text); (err != nil) != tt.wantErr {
				t.Errorf("got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCredential(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", "AIzaSyExample", false},
		{"surrounding space", "  AIzaSyExample\n", false},
		{"inner space", "AIza Sy", true},
		{"inner tab", "AIza\tSy", true},
		{"too long", strings.Repeat("k", 257), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateCredential(tt.key); (err != nil) != tt.wantErr {
				t.Errorf("got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
