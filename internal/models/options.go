// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxReferenceImages is how many uploaded images are forwarded to the
// image model as character references.
const MaxReferenceImages = 3

// AspectRatio is the frame shape requested for storyboard images.
type AspectRatio string

const (
	AspectSquare   AspectRatio = "1:1"
	AspectClassic  AspectRatio = "4:3"
	AspectWide     AspectRatio = "16:9"
	AspectPortrait AspectRatio = "9:16"
)

// DefaultAspect is used when no ratio was chosen.
const DefaultAspect = AspectWide

// AspectRatios lists the supported ratios.
var AspectRatios = []AspectRatio{AspectSquare, AspectClassic, AspectWide, AspectPortrait}

// Valid reports whether a is a supported ratio.
func (a AspectRatio) Valid() bool {
	for _, r := range AspectRatios {
		if a == r {
			return true
		}
	}
	return false
}

// MusicSettings are the studio music preferences.
type MusicSettings struct {
	Genre       string `json:"genre"`
	Mood        string `json:"mood"`
	Instruments string `json:"instruments"`
	Tempo       string `json:"tempo"`
}

// VisualSettings are the studio visual preferences.
type VisualSettings struct {
	Lighting   string `json:"lighting"`
	Angle      string `json:"angle"`
	Background string `json:"background"`
	Style      string `json:"style"`
}

// MediaType distinguishes uploaded images from videos.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// UploadedMedia is one file attached on the input form, base64 encoded.
type UploadedMedia struct {
	Type MediaType `json:"type"`
	Data string    `json:"data"`
	Name string    `json:"name"`
}

// GenerationOptions is everything the user configured for one generation.
// A zero ManualMusicStyle or ManualVisualStyle means "no override".
type GenerationOptions struct {
	Category           Category       `json:"category"`
	SourceText         string         `json:"sourceText"`
	AutoGenerateImages bool           `json:"autoGenerateImages"`
	AspectRatio        AspectRatio    `json:"aspectRatio"`
	Music              MusicSettings  `json:"musicSettings"`
	Visual             VisualSettings `json:"visualSettings"`
	ManualMusicStyle   string         `json:"manualMusicStyle,omitempty"`
	ManualVisualStyle  string         `json:"manualVisualStyle,omitempty"`
	ReferenceImages    []string       `json:"referenceImages,omitempty"`

	// APIKey is a per-request credential. It is never persisted.
	APIKey string `json:"-"`
}

// NewOptions returns options for a category with its defaults applied.
func NewOptions(c Category) GenerationOptions {
	d := DefaultsFor(c)
	return GenerationOptions{
		Category:           c,
		AutoGenerateImages: true,
		AspectRatio:        DefaultAspect,
		Music:              d.Music,
		Visual:             d.Visual,
	}
}

// ValidationError reports an option that cannot be submitted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the options at the point they leave the input form.
// Free-form studio settings are passed through untouched. An empty
// aspect ratio is replaced with the default and extra reference images
// beyond MaxReferenceImages are dropped.
func (o *GenerationOptions) Validate() error {
	if !o.Category.Valid() {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", o.Category)}
	}
	if strings.TrimSpace(o.SourceText) == "" {
		return &ValidationError{Field: "sourceText", Message: "pet story is required"}
	}
	if o.AspectRatio == "" {
		o.AspectRatio = DefaultAspect
	}
	if !o.AspectRatio.Valid() {
		return &ValidationError{Field: "aspectRatio", Message: fmt.Sprintf("unsupported aspect ratio %q", o.AspectRatio)}
	}
	if len(o.ReferenceImages) > MaxReferenceImages {
		o.ReferenceImages = o.ReferenceImages[:MaxReferenceImages]
	}
	for i, img := range o.ReferenceImages {
		if _, err := base64.StdEncoding.DecodeString(img); err != nil {
			return &ValidationError{Field: fmt.Sprintf("referenceImages[%d]", i), Message: "not valid base64"}
		}
	}
	return nil
}

// ReferenceImagesFrom picks the images out of uploaded media, in upload
// order, keeping at most MaxReferenceImages. Videos are never forwarded.
func ReferenceImagesFrom(media []UploadedMedia) []string {
	var out []string
	for _, m := range media {
		if m.Type != MediaImage || m.Data == "" {
			continue
		}
		out = append(out, m.Data)
		if len(out) == MaxReferenceImages {
			break
		}
	}
	return out
}
