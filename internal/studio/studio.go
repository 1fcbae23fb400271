// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package studio runs the song package pipeline: resolve the credential,
// compose the request, generate, render the storyboard, archive and record
// history. It also owns the client workflow state machine.
package studio

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pawtune/internal/ai"
	"pawtune/internal/history"
	"pawtune/internal/models"
	"pawtune/internal/prompt"
	"pawtune/internal/storyboard"
)

// HistoryWarning is shown when a result was produced but not recorded.
const HistoryWarning = "저장 공간이 부족하여 히스토리가 저장되지 않았습니다."

// ErrGenerationInFlight is returned when a client already has a
// generation running.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

// Generator is the subset of the Gemini client the pipeline needs.
type Generator interface {
	GenerateResult(ctx context.Context, apiKey, systemInstruction, body string) (*models.GenerationResult, error)
	GenerateText(ctx context.Context, apiKey, prompt, fallback string) (string, error)
	Ping(ctx context.Context, apiKey string) error
}

// Renderer renders storyboard images.
type Renderer interface {
	Render(ctx context.Context, job storyboard.Job) []*models.GeneratedImage
}

// Archiver copies generated images somewhere durable and records their
// URLs on the scenes. Failures are its own to log.
type Archiver interface {
	Archive(ctx context.Context, client string, result *models.GenerationResult)
}

// Outcome is a finished generation.
type Outcome struct {
	Result      *models.GenerationResult `json:"result"`
	HistoryItem *models.HistoryItem      `json:"historyItem,omitempty"`
	Warning     string                   `json:"warning,omitempty"`
	Duration    time.Duration            `json:"-"`
}

// Service wires the pipeline together.
type Service struct {
	gen        Generator
	renderer   Renderer
	archiver   Archiver
	history    *history.Store
	creds      *history.CredentialStore
	defaultKey string

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Deps holds Service collaborators. Archiver and DefaultKey are optional.
type Deps struct {
	Generator   Generator
	Renderer    Renderer
	Archiver    Archiver
	History     *history.Store
	Credentials *history.CredentialStore
	DefaultKey  string
}

// New creates a Service.
func New(d Deps) *Service {
	return &Service{
		gen:        d.Generator,
		renderer:   d.Renderer,
		archiver:   d.Archiver,
		history:    d.History,
		creds:      d.Credentials,
		defaultKey: strings.TrimSpace(d.DefaultKey),
		inflight:   make(map[string]struct{}),
	}
}

// ResolveKey picks the credential for a call: the explicit one, then the
// client's saved one, then the server default. It returns "" if none exists.
func (s *Service) ResolveKey(ctx context.Context, client, explicit string) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if s.creds != nil {
		saved, err := s.creds.Load(ctx, client)
		if err != nil {
			slog.Warn("saved credential unavailable", "client", client, "error", err)
		}
		if saved != "" {
			return saved
		}
	}
	return s.defaultKey
}

// InFlight reports whether client has a generation running.
func (s *Service) InFlight(client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[client]
	return ok
}

// Reservation holds a client's single generation slot. Take it before the
// client's session is marked GENERATING and release it after the outcome
// is recorded.
type Reservation struct {
	s      *Service
	client string
	once   sync.Once
}

// Reserve takes the client's generation slot. It fails with
// ErrGenerationInFlight while another reservation is held.
func (s *Service) Reserve(client string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inflight[client]; ok {
		return nil, ErrGenerationInFlight
	}
	s.inflight[client] = struct{}{}
	return &Reservation{s: s, client: client}, nil
}

// Release frees the slot. Calling it more than once is harmless.
func (r *Reservation) Release() {
	r.once.Do(func() {
		r.s.mu.Lock()
		delete(r.s.inflight, r.client)
		r.s.mu.Unlock()
	})
}

// Generate produces a song package for validated options. Schema, service
// and credential errors abort with nothing recorded. A history failure
// does not: the result is returned with a Warning.
func (s *Service) Generate(ctx context.Context, client string, opts models.GenerationOptions) (*Outcome, error) {
	res, err := s.Reserve(client)
	if err != nil {
		return nil, err
	}
	defer res.Release()
	return res.Generate(ctx, opts)
}

// Generate runs the pipeline under the reservation. The reservation stays
// held; the caller releases it.
func (r *Reservation) Generate(ctx context.Context, opts models.GenerationOptions) (*Outcome, error) {
	s, client := r.s, r.client
	start := time.Now()
	key := s.ResolveKey(ctx, client, opts.APIKey)
	if key == "" {
		return nil, &ai.MissingCredentialError{Op: "generate"}
	}

	req := prompt.Compose(opts)
	result, err := s.gen.GenerateResult(ctx, key, req.SystemInstruction, req.Body)
	if err != nil {
		slog.Error("generation failed", "client", client, "category", opts.Category, "error", err)
		return nil, err
	}
	result.Category = opts.Category

	if opts.AutoGenerateImages && len(result.ImagePrompts) > 0 && s.renderer != nil {
		images := s.renderer.Render(ctx, storyboard.Job{
			APIKey:           key,
			Category:         opts.Category,
			VisualDirectives: req.VisualDirectives,
			AspectRatio:      opts.AspectRatio,
			References:       opts.ReferenceImages,
			Scenes:           result.ImagePrompts,
		})
		result.ImagePrompts = storyboard.Attach(result.ImagePrompts, images)
	}

	if s.archiver != nil && result.ImageCount() > 0 {
		s.archiver.Archive(ctx, client, result)
	}

	out := &Outcome{Result: result}
	item, err := s.history.Append(ctx, client, *result, opts.SourceText)
	if err != nil {
		slog.Warn("history not recorded", "client", client, "error", err)
		out.Warning = HistoryWarning
	} else {
		out.HistoryItem = &item
	}

	out.Duration = time.Since(start)
	slog.Info("generation complete",
		"client", client,
		"category", opts.Category,
		"scenes", len(result.ImagePrompts),
		"images", result.ImageCount(),
		"duration", out.Duration.String(),
	)
	return out, nil
}

// Extract rewrites a pasted post into a clean pet story. Its output is
// plain text for the input form and is not checked against any schema.
func (s *Service) Extract(ctx context.Context, client, raw, explicitKey string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &models.ValidationError{Field: "text", Message: "text to analyze is required"}
	}
	key := s.ResolveKey(ctx, client, explicitKey)
	if key == "" {
		return "", &ai.MissingCredentialError{Op: "extract"}
	}
	return s.gen.GenerateText(ctx, key, prompt.ExtractionPrompt(raw), prompt.ExtractionFallback)
}

// CheckCredential validates a credential with the service. An empty
// candidate checks the one the client would use for generation.
func (s *Service) CheckCredential(ctx context.Context, client, candidate string) error {
	key := s.ResolveKey(ctx, client, candidate)
	if key == "" {
		return &ai.MissingCredentialError{Op: "ping"}
	}
	return s.gen.Ping(ctx, key)
}

// SaveCredential stores the client's credential. Empty clears it.
func (s *Service) SaveCredential(ctx context.Context, client, credential string) error {
	return s.creds.Save(ctx, client, credential)
}

// HasSavedCredential reports whether the client saved a credential, and
// whether the server has a default to fall back on.
func (s *Service) HasSavedCredential(ctx context.Context, client string) (saved bool, serverDefault bool) {
	if s.creds != nil {
		k, err := s.creds.Load(ctx, client)
		saved = err == nil && k != ""
	}
	return saved, s.defaultKey != ""
}

// History returns the client's history, newest first.
func (s *Service) History(ctx context.Context, client string) ([]models.HistoryItem, error) {
	return s.history.List(ctx, client)
}

// HistoryItem returns one history item.
func (s *Service) HistoryItem(ctx context.Context, client, id string) (*models.HistoryItem, error) {
	return s.history.Get(ctx, client, id)
}

// RemoveHistoryItem deletes one history item.
func (s *Service) RemoveHistoryItem(ctx context.Context, client, id string) error {
	return s.history.Remove(ctx, client, id)
}
