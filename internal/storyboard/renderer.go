// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storyboard renders the image for every scene of a generated
// storyboard and attaches the results back onto the scenes by position.
package storyboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"pawtune/internal/ai"
	"pawtune/internal/models"
	"pawtune/internal/prompt"
)

// DefaultLimit is the most scenes rendered for one generation.
const DefaultLimit = 20

// rateBurst lets the first couple of calls start without waiting.
const rateBurst = 2

// ImageGenerator produces one image per call.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, apiKey string, req ai.ImageRequest) (*models.GeneratedImage, error)
}

// Job is one storyboard fan-out.
type Job struct {
	APIKey           string
	Category         models.Category
	VisualDirectives string
	AspectRatio      models.AspectRatio
	References       []string
	Scenes           []models.ImagePrompt
}

// Renderer fans image calls out concurrently and waits for all of them.
type Renderer struct {
	gen      ImageGenerator
	limit    int
	interval time.Duration
}

// NewRenderer creates a renderer. limit <= 0 means DefaultLimit; interval
// > 0 spaces call starts through a token bucket.
func NewRenderer(gen ImageGenerator, limit int, interval time.Duration) *Renderer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Renderer{gen: gen, limit: limit, interval: interval}
}

// Limit returns the per-generation scene cap.
func (r *Renderer) Limit() int { return r.limit }

// Render returns one slot per scene, up to the limit, in scene order. A
// failed call leaves its slot nil and never affects the other slots.
func (r *Renderer) Render(ctx context.Context, job Job) []*models.GeneratedImage {
	scenes := job.Scenes
	if len(scenes) > r.limit {
		scenes = scenes[:r.limit]
	}
	refs := job.References
	if len(refs) > models.MaxReferenceImages {
		refs = refs[:models.MaxReferenceImages]
	}

	images := make([]*models.GeneratedImage, len(scenes))
	if len(scenes) == 0 {
		return images
	}

	var limiter *rate.Limiter
	if r.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(r.interval), rateBurst)
	}

	// Workers always return nil so one failure never cancels the rest.
	var g errgroup.Group
	for i, scene := range scenes {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					slog.Warn("storyboard image skipped", "scene", i, "section", scene.Section, "error", err)
					return nil
				}
			}

			img, err := r.gen.GenerateImage(ctx, job.APIKey, ai.ImageRequest{
				Prompt:      prompt.ImagePrompt(scene, job.VisualDirectives, job.Category),
				References:  refs,
				AspectRatio: string(job.AspectRatio),
			})
			if err != nil {
				slog.Warn("storyboard image failed", "scene", i, "section", scene.Section, "error", err)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	g.Wait()

	rendered := 0
	for _, img := range images {
		if img != nil {
			rendered++
		}
	}
	slog.Info("storyboard rendered", "scenes", len(job.Scenes), "attempted", len(scenes), "rendered", rendered)
	return images
}
