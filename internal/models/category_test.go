// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "exact", input: "RAINBOW", want: CategoryRainbow},
		{name: "lowercase", input: "missing", want: CategoryMissing},
		{name: "padded", input: "  growth ", want: CategoryGrowth},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "BIRTHDAY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultsFor(t *testing.T) {
	tests := []struct {
		category   Category
		genre      string
		mood       string
		instrument string
		tempo      string
		lighting   string
		style      string
	}{
		{CategoryMissing, "Urgent Cinematic (다급한 시네마틱)", "Urgent & Desperate", "Strings (Violin/Cello)", "Fast & Urgent", "Evening Street Light", "Realistic Photo 8K"},
		{CategoryRainbow, "Healing Piano (치유의 피아노)", "Nostalgic", "Piano", "Slow & Emotional", "Dreamy/Ethereal", "Watercolor Painting"},
		{CategoryTogether, "Acoustic Pop (밝고 경쾌한)", "Bright & Playful", "Ukulele", "Medium", "Natural Sunlight", "Disney/Pixar 3D"},
		{CategoryGrowth, "Sentimental Folk (감성적인 포크)", "Warm & Cozy", "Acoustic Guitar", "Medium", "Warm Golden Hour", "Soft Pastel"},
		{CategoryAdoption, "Hopeful Pop (희망찬 팝)", "Hopeful", "Whistling", "Medium", "Bright Studio", "Realistic Photo 8K"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			d := DefaultsFor(tt.category)
			if d.Music.Genre != tt.genre {
				t.Errorf("genre = %q, want %q", d.Music.Genre, tt.genre)
			}
			if d.Music.Mood != tt.mood {
				t.Errorf("mood = %q, want %q", d.Music.Mood, tt.mood)
			}
			if d.Music.Instruments != tt.instrument {
				t.Errorf("instruments = %q, want %q", d.Music.Instruments, tt.instrument)
			}
			if d.Music.Tempo != tt.tempo {
				t.Errorf("tempo = %q, want %q", d.Music.Tempo, tt.tempo)
			}
			if d.Visual.Lighting != tt.lighting {
				t.Errorf("lighting = %q, want %q", d.Visual.Lighting, tt.lighting)
			}
			if d.Visual.Style != tt.style {
				t.Errorf("style = %q, want %q", d.Visual.Style, tt.style)
			}
			if d.Visual.Angle != "Eye Level (Pet View)" {
				t.Errorf("angle = %q, want Eye Level (Pet View)", d.Visual.Angle)
			}
			if d.Visual.Background != "Grassy Park" {
				t.Errorf("background = %q, want Grassy Park", d.Visual.Background)
			}
		})
	}
}

// TestDefaultsForDoesNotAliasTable guards the lookup table against
// callers mutating the returned value.
func TestDefaultsForDoesNotAliasTable(t *testing.T) {
	d := DefaultsFor(CategoryRainbow)
	d.Music.Mood = "changed"
	if got := DefaultsFor(CategoryRainbow).Music.Mood; got != "Nostalgic" {
		t.Errorf("table mutated: mood = %q", got)
	}
}

func TestDefaultsForUnknownFallsBackToTogether(t *testing.T) {
	got := DefaultsFor(Category("NOPE"))
	want := DefaultsFor(CategoryTogether)
	if got != want {
		t.Errorf("DefaultsFor(unknown) = %+v, want %+v", got, want)
	}
}

func TestCategoryGenresComplete(t *testing.T) {
	for _, c := range Categories {
		if n := len(CategoryGenres[c]); n != 10 {
			t.Errorf("%s: %d genres, want 10", c, n)
		}
		if c.Label() == string(c) {
			t.Errorf("%s: missing label", c)
		}
	}
}

func TestNewCatalog(t *testing.T) {
	cat := NewCatalog()
	if len(cat.Categories) != len(Categories) {
		t.Fatalf("categories = %d, want %d", len(cat.Categories), len(Categories))
	}
	if cat.Categories[0].ID != CategoryTogether {
		t.Errorf("first category = %q, want TOGETHER", cat.Categories[0].ID)
	}
	if len(cat.AspectRatios) != 4 {
		t.Errorf("aspect ratios = %d, want 4", len(cat.AspectRatios))
	}
}
