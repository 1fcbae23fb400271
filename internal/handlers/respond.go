// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pawtune/internal/ai"
	"pawtune/internal/history"
	"pawtune/internal/middleware"
	"pawtune/internal/models"
	"pawtune/internal/studio"
)

const (
	// msgMissingCredential asks the user to enter a Gemini key in settings.
	msgMissingCredential = "Gemini API Key가 필요합니다. 설정(Settings) 메뉴에서 키를 입력해주세요."
	// msgGeneric is shown when the service gave no message of its own.
	msgGeneric = "오류가 발생했습니다. API 키를 확인해주세요."
)

// apiError is the JSON error body.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// classify maps an error to its HTTP status and JSON body.
func classify(err error) (int, apiError) {
	var (
		ve  *models.ValidationError
		sce *ai.ServiceCallError
		se  *ai.SchemaError
		ste *history.StorageError
		sse *sessionError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, apiError{Error: ve.Message, Code: "validation", Field: ve.Field}
	case errors.Is(err, ai.ErrMissingCredential):
		return http.StatusUnauthorized, apiError{Error: msgMissingCredential, Code: "missing_credential"}
	case errors.Is(err, studio.ErrInvalidTransition):
		return http.StatusConflict, apiError{Error: err.Error(), Code: "invalid_transition"}
	case errors.Is(err, studio.ErrGenerationInFlight):
		return http.StatusConflict, apiError{Error: err.Error(), Code: "in_flight"}
	case errors.As(err, &se):
		return http.StatusBadGateway, apiError{Error: se.Error(), Code: "schema"}
	case errors.As(err, &sce):
		msg := sce.Message
		if msg == "" {
			msg = msgGeneric
		}
		return http.StatusBadGateway, apiError{Error: msg, Code: "service"}
	case errors.Is(err, history.ErrItemNotFound):
		return http.StatusNotFound, apiError{Error: "history item not found", Code: "not_found"}
	case errors.As(err, &sse):
		return http.StatusServiceUnavailable, apiError{Error: "session storage unavailable", Code: "session"}
	case errors.As(err, &ste):
		return http.StatusServiceUnavailable, apiError{Error: "storage unavailable", Code: "storage"}
	default:
		return http.StatusInternalServerError, apiError{Error: "internal server error", Code: "internal"}
	}
}

// writeError maps err to a response. Server-side failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"client", middleware.ClientID(r.Context()),
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, body)
}

// userMessage is the text kept on the session after a failed generation.
func userMessage(err error) string {
	_, body := classify(err)
	if body.Code == "internal" || body.Code == "schema" {
		return msgGeneric
	}
	return body.Error
}

// decodeJSON reads a JSON body of at most limit bytes into dst. An empty
// body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return &models.ValidationError{Field: "body", Message: fmt.Sprintf("request body exceeds %d bytes", mbe.Limit)}
		}
		return &models.ValidationError{Field: "body", Message: "malformed JSON: " + err.Error()}
	}
	return nil
}
