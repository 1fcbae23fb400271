// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawtune/internal/models"
	"pawtune/internal/studio"
)

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// historyEntry is a history list row.
type historyEntry struct {
	ID         string          `json:"id"`
	Timestamp  int64           `json:"timestamp"`
	Category   models.Category `json:"category"`
	Name       string          `json:"name"`
	TitleKO    string          `json:"titleKO"`
	TitleEN    string          `json:"titleEN"`
	SourceText string          `json:"sourceText"`
}

// History lists the client's past generations, newest first.
func (h *Studio) History(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID
	items, err := h.svc.History(r.Context(), client)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries := make([]historyEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, historyEntry{
			ID:         it.ID,
			Timestamp:  it.Timestamp,
			Category:   it.Data.Category,
			Name:       it.Data.FactSummary.Name,
			TitleKO:    it.Data.Track1.TitleKO,
			TitleEN:    it.Data.Track1.TitleEN,
			SourceText: it.SourceText,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// OpenHistory shows a past generation as the current result.
func (h *Studio) OpenHistory(w http.ResponseWriter, r *http.Request) {
	data := h.current(r)
	item, err := h.svc.HistoryItem(r.Context(), data.ID, urlParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := move(data, studio.EventOpen); err != nil {
		writeError(w, r, err)
		return
	}

	result := item.Data
	data.Result = &result
	data.HistoryID = item.ID
	data.Draft.SourceText = item.SourceText
	if result.Category.Valid() {
		data.Draft.Category = result.Category
	}
	data.Error, data.Warning = "", ""
	if err := h.save(r.Context(), w, data); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteHistory removes one past generation.
func (h *Studio) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID
	if err := h.svc.RemoveHistoryItem(r.Context(), client, urlParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var sheetPage = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{font-family:sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem;line-height:1.6}table{border-collapse:collapse}td{border:1px solid #ddd;padding:.25rem .5rem;vertical-align:top}</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// sheetData fills sheetPage. Body is goldmark output, which never passes
// raw HTML through.
type sheetData struct {
	Title string
	Body  template.HTML
}

// Sheet renders a past generation as a printable HTML lyric sheet.
func (h *Studio) Sheet(w http.ResponseWriter, r *http.Request) {
	client := h.current(r).ID
	item, err := h.svc.HistoryItem(r.Context(), client, urlParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := studio.Sheet(item.Data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	title := item.Data.Track1.TitleKO
	if title == "" {
		title = item.Data.FactSummary.Name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sheetPage.Execute(w, sheetData{Title: title, Body: template.HTML(body)}); err != nil {
		slog.Error("sheet render failed", "client", client, "id", item.ID, "error", err)
	}
}
