// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"fmt"

	"pawtune/internal/models"
)

// NegativeClause is appended to every image prompt.
const NegativeClause = "human face, distorted, text, watermark, blurry, deformed paws, extra limbs"

var categoryMoods = map[models.Category]string{
	models.CategoryRainbow:  "Ethereal, soft lighting, memorial, dreamy atmosphere, glowing.",
	models.CategoryTogether: "Bright, sunny, playful, cute, high saturation.",
	models.CategoryGrowth:   "Warm nostalgic, scrapbook style, soft focus, timeline progression.",
	models.CategoryAdoption: "Bright studio lighting, eye contact, charming, clean background, hopeful.",
	models.CategoryMissing:  "Realistic, urgent, high contrast, clear details.",
}

// CategoryMood returns the mood modifier for image prompts. Unknown
// categories get the MISSING mood.
func CategoryMood(c models.Category) string {
	if m, ok := categoryMoods[c]; ok {
		return m
	}
	return categoryMoods[models.CategoryMissing]
}

// ImagePrompt builds the text part of one image request from a storyboard
// scene, the shared visual directives and the category.
func ImagePrompt(scene models.ImagePrompt, visualDirectives string, c models.Category) string {
	modifier := fmt.Sprintf("Visual Directive: %s. Category Mood: %s. Negative Prompt: %s. Focus on the animal character consistency.",
		visualDirectives, CategoryMood(c), NegativeClause)
	return fmt.Sprintf("%s. %s. Style Keywords: %s", scene.ImagePromptEN, modifier, scene.StyleKeywords)
}
