// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pawtune/internal/ai"
	"pawtune/internal/history"
	"pawtune/internal/kv"
	"pawtune/internal/models"
	"pawtune/internal/storyboard"
)

// fakeGenerator records calls and returns canned answers.
type fakeGenerator struct {
	mu      sync.Mutex
	result  *models.GenerationResult
	err     error
	text    string
	pingErr error
	block   chan struct{} // when set, GenerateResult waits on it
	started chan struct{}

	keys    []string
	bodies  []string
	pings   []string
	prompts []string
}

func (f *fakeGenerator) GenerateResult(_ context.Context, apiKey, _, body string) (*models.GenerationResult, error) {
	f.mu.Lock()
	f.keys = append(f.keys, apiKey)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	r.ImagePrompts = append([]models.ImagePrompt(nil), f.result.ImagePrompts...)
	return &r, nil
}

func (f *fakeGenerator) GenerateText(_ context.Context, apiKey, prompt, fallback string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, apiKey)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if f.text == "" {
		return fallback, nil
	}
	return f.text, nil
}

func (f *fakeGenerator) Ping(_ context.Context, apiKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings = append(f.pings, apiKey)
	return f.pingErr
}

// fakeRenderer returns an image for every scene except the indices in fail.
type fakeRenderer struct {
	fail map[int]bool
	jobs []storyboard.Job
}

func (f *fakeRenderer) Render(_ context.Context, job storyboard.Job) []*models.GeneratedImage {
	f.jobs = append(f.jobs, job)
	out := make([]*models.GeneratedImage, len(job.Scenes))
	for i := range job.Scenes {
		if !f.fail[i] {
			out[i] = &models.GeneratedImage{MimeType: "image/png", Data: "SU1H"}
		}
	}
	return out
}

type fakeArchiver struct{ calls int }

func (f *fakeArchiver) Archive(_ context.Context, _ string, r *models.GenerationResult) {
	f.calls++
	for i := range r.ImagePrompts {
		if r.ImagePrompts[i].GeneratedImage != nil {
			r.ImagePrompts[i].ImageURL = "https://cdn.example/" + r.ImagePrompts[i].Section + ".png"
		}
	}
}

// brokenStore fails every write.
type brokenStore struct{ kv.Store }

func (brokenStore) Set(context.Context, string, []byte) error { return errors.New("quota") }

func sampleResult() *models.GenerationResult {
	return &models.GenerationResult{
		Category:    models.CategoryTogether, // the service overwrites this
		FactSummary: models.FactSummary{Name: "초코", SubInfo: "3살"},
		Track1:      models.SongTrack{TitleKO: "초코야", TitleEN: "Choco", StylePrompt: "k-pop", Lyrics: "[Verse]\n초코야\n\n[Chorus]\n사랑해"},
		Track2:      models.SongTrack{TitleKO: "초코", TitleEN: "Choco Run", StylePrompt: "pop", Lyrics: "[Chorus]\nRun Choco"},
		YoutubePackage: models.YoutubePackage{
			Title: "초코의 노래", Tags: []string{"dog"}, Hashtags: []string{"#초코", "#dog"},
		},
		ImagePrompts: []models.ImagePrompt{
			{Section: "Intro", ImagePromptEN: "a dog"},
			{Section: "Verse", ImagePromptEN: "a dog running"},
			{Section: "Outro", ImagePromptEN: "a dog sleeping"},
		},
	}
}

func validOptions() models.GenerationOptions {
	o := models.NewOptions(models.CategoryGrowth)
	o.SourceText = "초코는 세 살이 되었어요."
	return o
}

type fixture struct {
	svc      *Service
	gen      *fakeGenerator
	renderer *fakeRenderer
	archiver *fakeArchiver
	history  *history.Store
	creds    *history.CredentialStore
}

func newFixture(t *testing.T, defaultKey string) *fixture {
	t.Helper()
	mem := kv.NewMemoryStore()
	f := &fixture{
		gen:      &fakeGenerator{result: sampleResult()},
		renderer: &fakeRenderer{},
		archiver: &fakeArchiver{},
		history:  history.NewStore(mem, 0),
		creds:    history.NewCredentialStore(mem, ""),
	}
	f.svc = New(Deps{
		Generator:   f.gen,
		Renderer:    f.renderer,
		Archiver:    f.archiver,
		History:     f.history,
		Credentials: f.creds,
		DefaultKey:  defaultKey,
	})
	return f
}

func TestGenerateHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "server-key")

	out, err := f.svc.Generate(ctx, "c1", validOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Warning != "" {
		t.Errorf("unexpected warning %q", out.Warning)
	}
	if out.Result.Category != models.CategoryGrowth {
		t.Errorf("category: got %q, want GROWTH", out.Result.Category)
	}
	if got := out.Result.ImageCount(); got != 3 {
		t.Errorf("images: got %d, want 3", got)
	}
	if f.archiver.calls != 1 {
		t.Errorf("archiver calls: got %d, want 1", f.archiver.calls)
	}
	if out.HistoryItem == nil {
		t.Fatal("history item missing")
	}

	items, _ := f.svc.History(ctx, "c1")
	if len(items) != 1 {
		t.Fatalf("history: got %d items", len(items))
	}
	if items[0].Data.ImageCount() != 0 {
		t.Error("history item kept inline images")
	}
	if items[0].Data.ImagePrompts[0].ImageURL == "" {
		t.Error("history item lost the archived image URL")
	}
	if items[0].SourceText != validOptions().SourceText {
		t.Errorf("source text: got %q", items[0].SourceText)
	}

	if len(f.renderer.jobs) != 1 {
		t.Fatalf("render jobs: got %d", len(f.renderer.jobs))
	}
	job := f.renderer.jobs[0]
	if job.APIKey != "server-key" || job.Category != models.CategoryGrowth || job.AspectRatio != models.AspectWide {
		t.Errorf("job: %+v", job)
	}
	if !strings.Contains(f.gen.bodies[0], "초코는 세 살이 되었어요.") {
		t.Error("composed body does not carry the narrative")
	}
}

func TestGeneratePartialImageFailure(t *testing.T) {
	f := newFixture(t, "k")
	f.renderer.fail = map[int]bool{1: true}

	out, err := f.svc.Generate(context.Background(), "c", validOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	scenes := out.Result.ImagePrompts
	if len(scenes) != 3 {
		t.Fatalf("scenes: got %d", len(scenes))
	}
	if scenes[0].GeneratedImage == nil || scenes[2].GeneratedImage == nil {
		t.Error("successful scenes lost their images")
	}
	if scenes[1].GeneratedImage != nil {
		t.Error("failed scene has an image")
	}
	if scenes[1].ImagePromptEN != "a dog running" {
		t.Errorf("failed scene prompt changed: %q", scenes[1].ImagePromptEN)
	}
}

func TestGenerateSkipsImagesWhenDisabled(t *testing.T) {
	f := newFixture(t, "k")
	opts := validOptions()
	opts.AutoGenerateImages = false

	out, err := f.svc.Generate(context.Background(), "c", opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(f.renderer.jobs) != 0 {
		t.Error("renderer called with images disabled")
	}
	if f.archiver.calls != 0 {
		t.Error("archiver called with nothing to archive")
	}
	if out.Result.ImageCount() != 0 {
		t.Error("result has images")
	}
}

func TestGenerateErrorsStoreNothing(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "schema", err: &ai.SchemaError{Path: "$.track2", Err: errors.New("required field is missing")}},
		{name: "service", err: &ai.ServiceCallError{Op: "generate", StatusCode: 429, Message: "Resource has been exhausted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, "k")
			f.gen.err = tt.err

			out, err := f.svc.Generate(ctx, "c", validOptions())
			if !errors.Is(err, tt.err) {
				t.Fatalf("Generate: got %v, want %v", err, tt.err)
			}
			if out != nil {
				t.Error("outcome returned alongside an error")
			}
			items, _ := f.svc.History(ctx, "c")
			if len(items) != 0 {
				t.Errorf("history: got %d items after a failed generation", len(items))
			}
			if len(f.renderer.jobs) != 0 {
				t.Error("renderer called after a failed generation")
			}
		})
	}
}

func TestGenerateHistoryFailureIsWarning(t *testing.T) {
	mem := kv.NewMemoryStore()
	gen := &fakeGenerator{result: sampleResult()}
	svc := New(Deps{
		Generator:   gen,
		Renderer:    &fakeRenderer{},
		History:     history.NewStore(brokenStore{mem}, 0),
		Credentials: history.NewCredentialStore(mem, ""),
		DefaultKey:  "k",
	})

	out, err := svc.Generate(context.Background(), "c", validOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Warning != HistoryWarning {
		t.Errorf("warning: got %q", out.Warning)
	}
	if out.HistoryItem != nil {
		t.Error("history item returned although nothing was stored")
	}
	if out.Result == nil || out.Result.ImageCount() != 3 {
		t.Error("result should still be delivered")
	}
}

func TestResolveKeyOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "server")

	if got := f.svc.ResolveKey(ctx, "c", ""); got != "server" {
		t.Errorf("server default: got %q", got)
	}
	f.creds.Save(ctx, "c", "saved")
	if got := f.svc.ResolveKey(ctx, "c", ""); got != "saved" {
		t.Errorf("saved: got %q", got)
	}
	if got := f.svc.ResolveKey(ctx, "c", " explicit "); got != "explicit" {
		t.Errorf("explicit: got %q", got)
	}
	if got := f.svc.ResolveKey(ctx, "other", ""); got != "server" {
		t.Errorf("other client: got %q", got)
	}
}

func TestMissingCredentialMakesNoCalls(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")

	_, err := f.svc.Generate(ctx, "c", validOptions())
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("Generate: got %v, want ErrMissingCredential", err)
	}
	_, err = f.svc.Extract(ctx, "c", "post", "")
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("Extract: got %v, want ErrMissingCredential", err)
	}
	err = f.svc.CheckCredential(ctx, "c", "")
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("CheckCredential: got %v, want ErrMissingCredential", err)
	}
	if len(f.gen.keys) != 0 || len(f.gen.pings) != 0 {
		t.Error("generator called without a credential")
	}
}

func TestGenerateRejectsConcurrentRun(t *testing.T) {
	f := newFixture(t, "k")
	f.gen.block = make(chan struct{})
	f.gen.started = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Generate(context.Background(), "c", validOptions())
		done <- err
	}()

	select {
	case <-f.gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first generation never started")
	}

	if !f.svc.InFlight("c") {
		t.Error("InFlight should report the running generation")
	}
	if _, err := f.svc.Generate(context.Background(), "c", validOptions()); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("second Generate: got %v, want ErrGenerationInFlight", err)
	}

	close(f.gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if f.svc.InFlight("c") {
		t.Error("guard not released")
	}
}

func TestReservationHoldsSlot(t *testing.T) {
	f := newFixture(t, "k")

	res, err := f.svc.Reserve("c")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !f.svc.InFlight("c") {
		t.Error("InFlight should report the reservation before any generation runs")
	}
	if _, err := f.svc.Reserve("c"); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("second Reserve: got %v, want ErrGenerationInFlight", err)
	}
	if _, err := f.svc.Generate(context.Background(), "c", validOptions()); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("Generate: got %v, want ErrGenerationInFlight", err)
	}
	if f.svc.InFlight("d") {
		t.Error("slots are per client")
	}

	if _, err := res.Generate(context.Background(), validOptions()); err != nil {
		t.Fatalf("reserved Generate: %v", err)
	}
	if !f.svc.InFlight("c") {
		t.Error("slot released before Release")
	}

	res.Release()
	if f.svc.InFlight("c") {
		t.Error("slot still held after Release")
	}

	again, err := f.svc.Reserve("c")
	if err != nil {
		t.Fatalf("Reserve after Release: %v", err)
	}
	res.Release() // a stale release must not free the new holder
	if !f.svc.InFlight("c") {
		t.Error("double Release freed another reservation")
	}
	again.Release()
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "k")
	f.gen.text = "초코는 푸들이에요."

	got, err := f.svc.Extract(ctx, "c", "인스타 글 #푸들", "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "초코는 푸들이에요." {
		t.Errorf("Extract: got %q", got)
	}
	if !strings.HasSuffix(f.gen.prompts[0], "인스타 글 #푸들") {
		t.Errorf("prompt does not end with the raw text: %q", f.gen.prompts[0])
	}

	var ve *models.ValidationError
	if _, err := f.svc.Extract(ctx, "c", "   ", ""); !errors.As(err, &ve) {
		t.Errorf("blank Extract: got %v, want *ValidationError", err)
	}
}

func TestCheckCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")

	if err := f.svc.CheckCredential(ctx, "c", "candidate"); err != nil {
		t.Fatalf("CheckCredential: %v", err)
	}
	if f.gen.pings[0] != "candidate" {
		t.Errorf("pinged with %q", f.gen.pings[0])
	}

	f.gen.pingErr = &ai.ServiceCallError{Op: "ping", StatusCode: 400, Message: "API key not valid"}
	var sce *ai.ServiceCallError
	if err := f.svc.CheckCredential(ctx, "c", "bad"); !errors.As(err, &sce) {
		t.Errorf("CheckCredential bad: got %v", err)
	}
}

func TestSaveCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "server")

	saved, def := f.svc.HasSavedCredential(ctx, "c")
	if saved || !def {
		t.Errorf("before save: saved=%v default=%v", saved, def)
	}
	if err := f.svc.SaveCredential(ctx, "c", "mine"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	if saved, _ := f.svc.HasSavedCredential(ctx, "c"); !saved {
		t.Error("credential not saved")
	}
	f.svc.SaveCredential(ctx, "c", "")
	if saved, _ := f.svc.HasSavedCredential(ctx, "c"); saved {
		t.Error("credential not cleared")
	}
}

func TestHistoryItemLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "k")

	out, err := f.svc.Generate(ctx, "c", validOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	item, err := f.svc.HistoryItem(ctx, "c", out.HistoryItem.ID)
	if err != nil {
		t.Fatalf("HistoryItem: %v", err)
	}
	if item.Data.Track1.TitleKO != "초코야" {
		t.Errorf("item: %+v", item.Data.Track1)
	}
	if err := f.svc.RemoveHistoryItem(ctx, "c", item.ID); err != nil {
		t.Fatalf("RemoveHistoryItem: %v", err)
	}
	if _, err := f.svc.HistoryItem(ctx, "c", item.ID); !errors.Is(err, history.ErrItemNotFound) {
		t.Errorf("after remove: got %v", err)
	}
}
