// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"time"
)

// HistoryItem is a stored generation. Data never carries inline images.
type HistoryItem struct {
	ID         string           `json:"id"`
	Timestamp  int64            `json:"timestamp"` // Unix milliseconds
	Data       GenerationResult `json:"data"`
	SourceText string           `json:"sourceText"`
}

// NewHistoryItem builds an item for result created at t. The id is the
// creation time in Unix milliseconds.
func NewHistoryItem(result GenerationResult, sourceText string, t time.Time) HistoryItem {
	ms := t.UnixMilli()
	return HistoryItem{
		ID:         strconv.FormatInt(ms, 10),
		Timestamp:  ms,
		Data:       result.WithoutImages(),
		SourceText: sourceText,
	}
}

// CreatedAt returns the creation time.
func (h HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}
