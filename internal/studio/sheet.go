// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"fmt"
	"strings"

	"pawtune/internal/markdown"
	"pawtune/internal/models"
)

// SheetMarkdown lays out a result as a printable lyric and publishing sheet.
func SheetMarkdown(r models.GenerationResult) string {
	var b strings.Builder

	title := r.FactSummary.Name
	if title == "" {
		title = r.Track1.TitleKO
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if label := r.Category.Label(); label != "" {
		fmt.Fprintf(&b, "*%s*\n\n", label)
	}

	b.WriteString("## Story\n\n")
	b.WriteString("| | |\n|---|---|\n")
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "| %s | %s |\n", k, cell(v))
		}
	}
	row("Name", r.FactSummary.Name)
	row("Info", r.FactSummary.SubInfo)
	row("Location", r.FactSummary.Location)
	row("Features", r.FactSummary.BreedAndFeatures)
	row("Situation", r.FactSummary.Situation)
	row("Message", r.FactSummary.OwnerMessage)
	b.WriteString("\n")

	b.WriteString("## Music Direction\n\n")
	fmt.Fprintf(&b, "- Genre: %s\n- BPM: %s\n- Instruments: %s\n- Vocal: %s\n\n",
		r.MusicDirection.Genre, r.MusicDirection.BPMRange,
		r.MusicDirection.Instruments, r.MusicDirection.VocalStyle)

	for i, t := range []models.SongTrack{r.Track1, r.Track2} {
		fmt.Fprintf(&b, "## Track %d: %s / %s\n\n", i+1, t.TitleKO, t.TitleEN)
		fmt.Fprintf(&b, "Style: `%s`\n\n", strings.ReplaceAll(t.StylePrompt, "`", "'"))
		for _, para := range strings.Split(strings.TrimSpace(t.Lyrics), "\n\n") {
			b.WriteString(para)
			b.WriteString("\n\n")
		}
	}

	yt := r.YoutubePackage
	b.WriteString("## YouTube\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", yt.Title)
	if yt.DescriptionKR != "" {
		b.WriteString(yt.DescriptionKR + "\n\n")
	}
	if yt.DescriptionEN != "" {
		b.WriteString(yt.DescriptionEN + "\n\n")
	}
	if len(yt.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(yt.Tags, ", "))
	}
	if len(yt.Hashtags) > 0 {
		// Escaped so a leading # is not read as a heading.
		fmt.Fprintf(&b, "\\%s\n\n", strings.Join(yt.Hashtags, " "))
	}

	if len(r.ImagePrompts) > 0 {
		b.WriteString("## Storyboard\n\n")
		for i, p := range r.ImagePrompts {
			fmt.Fprintf(&b, "%d. **%s** %s", i+1, p.Section, p.ImagePromptEN)
			if p.ImageURL != "" {
				fmt.Fprintf(&b, " ([image](%s))", p.ImageURL)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Sheet renders SheetMarkdown as an HTML fragment.
func Sheet(r models.GenerationResult) (string, error) {
	html, err := markdown.ToHTML(SheetMarkdown(r))
	if err != nil {
		return "", fmt.Errorf("render sheet: %w", err)
	}
	return html, nil
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
