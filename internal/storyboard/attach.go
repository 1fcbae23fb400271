// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storyboard

import "pawtune/internal/models"

// Attach pairs images with scenes by index and returns a new slice.
// Scene i gets images[i]; scenes past the end of images, or whose slot is
// nil, carry no image. Extra images are ignored and order never changes.
func Attach(scenes []models.ImagePrompt, images []*models.GeneratedImage) []models.ImagePrompt {
	if scenes == nil {
		return nil
	}
	out := make([]models.ImagePrompt, len(scenes))
	copy(out, scenes)
	for i := range out {
		out[i].GeneratedImage = nil
		if i < len(images) {
			out[i].GeneratedImage = images[i]
		}
	}
	return out
}
