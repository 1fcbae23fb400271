// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"pawtune/internal/middleware"
	"pawtune/internal/models"
	"pawtune/internal/session"
	"pawtune/internal/studio"
)

// msgInterrupted is kept on a session whose generation died with its process.
const msgInterrupted = "생성이 중단되었습니다. 다시 시도해주세요."

// Studio serves the studio JSON API. Every handler expects
// middleware.LoadSession to have run.
type Studio struct {
	svc      *studio.Service
	sessions *session.Store
	catalog  models.Catalog
}

// NewStudio creates the studio handlers.
func NewStudio(svc *studio.Service, sessions *session.Store) *Studio {
	return &Studio{svc: svc, sessions: sessions, catalog: models.NewCatalog()}
}

// stateResponse is the client's view of its session.
type stateResponse struct {
	Step      studio.Step              `json:"step"`
	Draft     models.GenerationOptions `json:"draft"`
	Result    *models.GenerationResult `json:"result,omitempty"`
	HistoryID string                   `json:"historyId,omitempty"`
	Error     string                   `json:"error,omitempty"`
	Warning   string                   `json:"warning,omitempty"`
	InFlight  bool                     `json:"inFlight"`
}

// current returns the request's session with defaults filled in. A
// session left in GENERATING with nothing running (the process that ran
// it is gone) is moved back to CONFIRMATION.
func (h *Studio) current(r *http.Request) *session.Data {
	data := middleware.SessionFromCtx(r.Context())
	if !studio.Step(data.Step).Valid() {
		data.Step = string(studio.StepInput)
	}
	if data.Draft.Category == "" {
		source := data.Draft.SourceText
		data.Draft = models.NewOptions(models.CategoryTogether)
		data.Draft.SourceText = source
	}
	if data.Step == string(studio.StepGenerating) && !h.svc.InFlight(data.ID) {
		next, _ := studio.Transition(studio.StepGenerating, studio.EventFail)
		data.Step = string(next)
		data.Error = msgInterrupted
	}
	return data
}

// move applies ev to the session step.
func move(data *session.Data, ev studio.Event) error {
	next, err := studio.Transition(studio.Step(data.Step), ev)
	if err != nil {
		return err
	}
	data.Step = string(next)
	return nil
}

func (h *Studio) save(ctx context.Context, w http.ResponseWriter, data *session.Data) error {
	if err := h.sessions.Save(ctx, w, data); err != nil {
		return &sessionError{err: err}
	}
	return nil
}

// sessionError marks a failed session write.
type sessionError struct{ err error }

func (e *sessionError) Error() string { return e.err.Error() }
func (e *sessionError) Unwrap() error { return e.err }

func (h *Studio) writeState(w http.ResponseWriter, r *http.Request, data *session.Data) {
	resp := stateResponse{
		Step:      studio.Step(data.Step),
		Draft:     data.Draft,
		Result:    data.Result,
		HistoryID: data.HistoryID,
		Error:     data.Error,
		Warning:   data.Warning,
		InFlight:  h.svc.InFlight(data.ID),
	}
	if resp.Result != nil && r.URL.Query().Get("images") != "1" {
		stripped := resp.Result.WithoutImages()
		resp.Result = &stripped
	}
	writeJSON(w, http.StatusOK, resp)
}

// Catalog returns every enumerated option for the input form.
func (h *Studio) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// Defaults returns the settings a category starts with.
func (h *Studio) Defaults(w http.ResponseWriter, r *http.Request) {
	c, err := models.ParseCategory(urlParam(r, "category"))
	if err != nil {
		writeError(w, r, &models.ValidationError{Field: "category", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, models.DefaultsFor(c))
}

// State returns the session snapshot. Inline images are omitted unless
// the query has images=1.
func (h *Studio) State(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, r, h.current(r))
}

// draftRequest is a draft update. Media, when present, replaces the
// reference images with the uploaded images it contains.
type draftRequest struct {
	models.GenerationOptions
	Media []models.UploadedMedia `json:"media,omitempty"`
}

// applyDraft merges an incoming draft into the session. Picking a new
// category resets the studio settings to that category's defaults.
func applyDraft(data *session.Data, req draftRequest) error {
	next := req.GenerationOptions
	if next.Category == "" {
		next.Category = data.Draft.Category
	}
	if len(req.Media) > 0 {
		next.ReferenceImages = models.ReferenceImagesFrom(req.Media)
	}
	if next.Category != data.Draft.Category && next.Category.Valid() {
		d := models.DefaultsFor(next.Category)
		next.Music, next.Visual = d.Music, d.Visual
	}
	if next.AspectRatio == "" {
		next.AspectRatio = models.DefaultAspect
	}
	if err := validateDraft(&next); err != nil {
		return err
	}
	data.Draft = next
	return nil
}

// UpdateDraft replaces the draft. Only allowed on the input step.
func (h *Studio) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	data := h.current(r)
	if data.Step != string(studio.StepInput) {
		writeError(w, r, studio.ErrInvalidTransition)
		return
	}

	var req draftRequest
	req.GenerationOptions = data.Draft
	req.ReferenceImages = nil
	if err := decodeJSON(w, r, &req, draftBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := applyDraft(data, req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.save(r.Context(), w, data); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeState(w, r, data)
}

type extractRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"apiKey,omitempty"`
}

// Extract rewrites pasted text into a pet story and puts it in the draft.
func (h *Studio) Extract(w http.ResponseWriter, r *http.Request) {
	data := h.current(r)
	if data.Step != string(studio.StepInput) {
		writeError(w, r, studio.ErrInvalidTransition)
		return
	}

	var req extractRequest
	if err := decodeJSON(w, r, &req, smallBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateExtract(req.Text); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateCredential(req.APIKey); err != nil {
		writeError(w, r, err)
		return
	}

	text, err := h.svc.Extract(r.Context(), data.ID, req.Text, req.APIKey)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data.Draft.SourceText = text
	if err := h.save(r.Context(), w, data); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// Submit validates the draft (optionally replaced by the body) and moves
// the client to confirmation.
func (h *Studio) Submit(w http.ResponseWriter, r *http.Request) {
	data := h.current(r)
	if data.Step != string(studio.StepInput) {
		writeError(w, r, studio.ErrInvalidTransition)
		return
	}

	req := draftRequest{GenerationOptions: data.Draft}
	if err := decodeJSON(w, r, &req, draftBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := applyDraft(data, req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := data.Draft.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := move(data, studio.EventSubmit); err != nil {
		writeError(w, r, err)
		return
	}
	data.Error = ""
	if err := h.save(r.Context(), w, data); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeState(w, r, data)
}

// Edit returns to the input form with the draft intact.
func (h *Studio) Edit(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, studio.EventEdit, false)
}

// Reset returns to the input form and drops the shown result.
func (h *Studio) Reset(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, studio.EventReset, true)
}

func (h *Studio) step(w http.ResponseWriter, r *http.Request, ev studio.Event, clearResult bool) {
	data := h.current(r)
	if err := move(data, ev); err != nil {
		writeError(w, r, err)
		return
	}
	data.Error, data.Warning = "", ""
	if clearResult {
		data.Result, data.HistoryID = nil, ""
	}
	if err := h.save(r.Context(), w, data); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeState(w, r, data)
}

type confirmRequest struct {
	APIKey string `json:"apiKey,omitempty"`
}

// Confirm runs the generation. The session is GENERATING while it runs,
// then RESULTS on success or CONFIRMATION with the error kept on failure.
// The generation is not tied to the request: a client that disconnects
// finds the outcome in its session.
func (h *Studio) Confirm(w http.ResponseWriter, r *http.Request) {
	data := h.current(r)

	var req confirmRequest
	if err := decodeJSON(w, r, &req, smallBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateCredential(req.APIKey); err != nil {
		writeError(w, r, err)
		return
	}

	// Hold the slot before saving GENERATING: state reads treat GENERATING
	// without a held slot as interrupted.
	res, err := h.svc.Reserve(data.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer res.Release()

	if err := move(data, studio.EventConfirm); err != nil {
		writeError(w, r, err)
		return
	}
	data.Error, data.Warning = "", ""

	ctx := context.WithoutCancel(r.Context())
	if err := h.save(ctx, w, data); err != nil {
		writeError(w, r, err)
		return
	}

	opts := data.Draft
	opts.APIKey = req.APIKey
	out, err := res.Generate(ctx, opts)
	if err != nil {
		data.Step = string(studio.StepGenerating)
		_ = move(data, studio.EventFail)
		data.Error = userMessage(err)
		if serr := h.save(ctx, w, data); serr != nil {
			slog.Error("session save after failed generation", "client", data.ID, "error", serr)
		}
		writeError(w, r, err)
		return
	}

	data.Step = string(studio.StepGenerating)
	_ = move(data, studio.EventSucceed)
	data.Result = out.Result
	data.Warning = out.Warning
	data.HistoryID = ""
	if out.HistoryItem != nil {
		data.HistoryID = out.HistoryItem.ID
	}
	if err := h.save(ctx, w, data); err != nil {
		slog.Error("session save after generation", "client", data.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, out)
}
