// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// GenerationResult is the song package returned by the model. JSON names
// follow the response schema sent to the service.
type GenerationResult struct {
	Category        Category       `json:"category"`
	FactSummary     FactSummary    `json:"factSummary"`
	StoryType       string         `json:"storyType"`
	EmotionalIntent string         `json:"emotionalIntent"`
	MusicDirection  MusicDirection `json:"musicDirection"`
	Track1          SongTrack      `json:"track1"`
	Track2          SongTrack      `json:"track2"`
	YoutubePackage  YoutubePackage `json:"youtubePackage"`
	ImagePrompts    []ImagePrompt  `json:"imagePrompts"`
}

// FactSummary is the set of facts pulled from the owner's narrative.
// SubInfo and Situation carry whatever the category needs (missing date,
// birthday, memorial message and so on).
type FactSummary struct {
	Name             string `json:"name"`
	SubInfo          string `json:"subInfo"`
	Location         string `json:"location"`
	BreedAndFeatures string `json:"breedAndFeatures"`
	Situation        string `json:"situation"`
	OwnerMessage     string `json:"ownerMessage"`
}

type MusicDirection struct {
	Genre       string `json:"genre"`
	BPMRange    string `json:"bpmRange"`
	Instruments string `json:"instruments"`
	VocalStyle  string `json:"vocalStyle"`
}

// SongTrack is one of the two songs. Track 1 is mostly Korean, track 2
// mostly English.
type SongTrack struct {
	TitleKO     string `json:"titleKO"`
	TitleEN     string `json:"titleEN"`
	StylePrompt string `json:"stylePrompt"`
	Lyrics      string `json:"lyrics"`
}

type YoutubePackage struct {
	Title         string   `json:"title"`
	DescriptionKR string   `json:"descriptionKR"`
	DescriptionEN string   `json:"descriptionEN"`
	Tags          []string `json:"tags"`
	Hashtags      []string `json:"hashtags"`
}

// ImagePrompt is one storyboard scene. GeneratedImage is attached after
// the fan-out; ImageURL is set when the image was archived to object storage.
type ImagePrompt struct {
	Section          string          `json:"section"`
	ImagePromptEN    string          `json:"imagePromptEN"`
	NegativePromptEN string          `json:"negativePromptEN"`
	AspectRatio      string          `json:"aspectRatio"`
	StyleKeywords    string          `json:"styleKeywords"`
	GeneratedImage   *GeneratedImage `json:"generatedImage,omitempty"`
	ImageURL         string          `json:"imageURL,omitempty"`
}

// GeneratedImage is an inline image payload as returned by the image model.
type GeneratedImage struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// DataURL renders the image as a data: URL for direct embedding.
func (g *GeneratedImage) DataURL() string {
	if g == nil {
		return ""
	}
	mime := g.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + g.Data
}

// ImageCount returns how many scenes carry an inline image.
func (r *GenerationResult) ImageCount() int {
	n := 0
	for _, p := range r.ImagePrompts {
		if p.GeneratedImage != nil {
			n++
		}
	}
	return n
}

// WithoutImages returns a copy of r whose scenes carry no inline images.
// r itself is left untouched.
func (r GenerationResult) WithoutImages() GenerationResult {
	if r.ImagePrompts == nil {
		return r
	}
	prompts := make([]ImagePrompt, len(r.ImagePrompts))
	copy(prompts, r.ImagePrompts)
	for i := range prompts {
		prompts[i].GeneratedImage = nil
	}
	r.ImagePrompts = prompts
	return r
}
