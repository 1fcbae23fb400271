// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"pawtune/internal/ai"
)

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

type credentialStatus struct {
	Saved         bool `json:"saved"`
	ServerDefault bool `json:"serverDefault"`
}

// Credential reports whether the client saved a Gemini key. The key
// itself is never returned.
func (h *Studio) Credential(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID
	saved, def := h.svc.HasSavedCredential(r.Context(), client)
	writeJSON(w, http.StatusOK, credentialStatus{Saved: saved, ServerDefault: def})
}

// SaveCredential stores the client's Gemini key. An empty key clears it.
func (h *Studio) SaveCredential(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID

	var req credentialRequest
	if err := decodeJSON(w, r, &req, smallBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateCredential(req.APIKey); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.SaveCredential(r.Context(), client, req.APIKey); err != nil {
		writeError(w, r, err)
		return
	}
	saved, def := h.svc.HasSavedCredential(r.Context(), client)
	writeJSON(w, http.StatusOK, credentialStatus{Saved: saved, ServerDefault: def})
}

type checkResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// CheckCredential asks the service whether a key works. With an empty
// body it checks the key generation would use. A rejected key is a
// normal answer, not an error.
func (h *Studio) CheckCredential(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID

	var req credentialRequest
	if err := decodeJSON(w, r, &req, smallBody); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateCredential(req.APIKey); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.svc.CheckCredential(r.Context(), client, req.APIKey)
	var sce *ai.ServiceCallError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, checkResponse{Valid: true})
	case errors.As(err, &sce):
		_, body := classify(err)
		writeJSON(w, http.StatusOK, checkResponse{Valid: false, Message: body.Error})
	default:
		writeError(w, r, err)
	}
}
