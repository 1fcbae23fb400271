// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Category is the theme of a song package. It conditions the system
// instruction, the default studio settings and the image mood.
type Category string

const (
	CategoryMissing  Category = "MISSING"
	CategoryRainbow  Category = "RAINBOW"
	CategoryTogether Category = "TOGETHER"
	CategoryGrowth   Category = "GROWTH"
	CategoryAdoption Category = "ADOPTION"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTogether,
	CategoryGrowth,
	CategoryAdoption,
	CategoryMissing,
	CategoryRainbow,
}

var categoryLabels = map[Category]string{
	CategoryMissing:  "실종/구조",
	CategoryRainbow:  "무지개 다리",
	CategoryTogether: "행복한 일상",
	CategoryGrowth:   "성장 일기",
	CategoryAdoption: "입양 홍보",
}

// ParseCategory converts a raw string into a Category. Matching is
// case-insensitive; anything outside the closed set is rejected.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the Korean display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// DefaultSettings are the studio settings applied when a category is picked.
type DefaultSettings struct {
	Music  MusicSettings  `json:"musicSettings"`
	Visual VisualSettings `json:"visualSettings"`
}

// categoryDefaults is the single source of per-category defaults.
// Genre is always the first entry of the category's genre list.
var categoryDefaults = map[Category]DefaultSettings{
	CategoryMissing: {
		Music:  MusicSettings{Mood: "Urgent & Desperate", Instruments: "Strings (Violin/Cello)", Tempo: "Fast & Urgent"},
		Visual: VisualSettings{Lighting: "Evening Street Light", Style: "Realistic Photo 8K"},
	},
	CategoryRainbow: {
		Music:  MusicSettings{Mood: "Nostalgic", Instruments: "Piano", Tempo: "Slow & Emotional"},
		Visual: VisualSettings{Lighting: "Dreamy/Ethereal", Style: "Watercolor Painting"},
	},
	CategoryTogether: {
		Music:  MusicSettings{Mood: "Bright & Playful", Instruments: "Ukulele", Tempo: "Medium"},
		Visual: VisualSettings{Lighting: "Natural Sunlight", Style: "Disney/Pixar 3D"},
	},
	CategoryGrowth: {
		Music:  MusicSettings{Mood: "Warm & Cozy", Instruments: "Acoustic Guitar", Tempo: "Medium"},
		Visual: VisualSettings{Lighting: "Warm Golden Hour", Style: "Soft Pastel"},
	},
	CategoryAdoption: {
		Music:  MusicSettings{Mood: "Hopeful", Instruments: "Whistling", Tempo: "Medium"},
		Visual: VisualSettings{Lighting: "Bright Studio", Style: "Realistic Photo 8K"},
	},
}

// DefaultsFor returns the default studio settings for a category.
// Unknown categories get the TOGETHER defaults, which is also the
// category a fresh draft starts with.
func DefaultsFor(c Category) DefaultSettings {
	d, ok := categoryDefaults[c]
	if !ok {
		c = CategoryTogether
		d = categoryDefaults[c]
	}
	d.Music.Genre = CategoryGenres[c][0]
	d.Visual.Angle = VisualAngles[0]
	d.Visual.Background = VisualBackgrounds[0]
	return d
}
