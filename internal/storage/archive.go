// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pawtune/internal/models"
	"pawtune/internal/slug"
)

// Uploader is the object store the archive writes to. *Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Archive copies generated storyboard images to object storage and records
// their public URLs on the scenes. The inline payloads stay in place.
type Archive struct {
	up  Uploader
	now func() time.Time
}

// NewArchive creates an archive on top of up.
func NewArchive(up Uploader) *Archive {
	return &Archive{up: up, now: time.Now}
}

// Archive uploads every scene image of result. A failed upload is logged
// and leaves that scene's ImageURL empty.
func (a *Archive) Archive(ctx context.Context, client string, result *models.GenerationResult) {
	prefix := fmt.Sprintf("storyboards/%s/%s-%s",
		a.now().UTC().Format("2006/01/02"),
		slug.GenerateOr(result.FactSummary.Name, "pet"),
		uuid.NewString()[:8],
	)

	uploaded := 0
	for i := range result.ImagePrompts {
		scene := &result.ImagePrompts[i]
		if scene.GeneratedImage == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(scene.GeneratedImage.Data)
		if err != nil {
			slog.Warn("archive: bad image payload", "client", client, "scene", i, "error", err)
			continue
		}

		mime := scene.GeneratedImage.MimeType
		if mime == "" {
			mime = "image/png"
		}
		key := fmt.Sprintf("%s/%02d-%s%s", prefix, i+1, slug.GenerateOr(scene.Section, "scene"), extension(mime))
		if err := a.up.Upload(ctx, key, mime, bytes.NewReader(data), int64(len(data))); err != nil {
			slog.Warn("archive: upload failed", "client", client, "key", key, "error", err)
			continue
		}
		scene.ImageURL = a.up.FileURL(key)
		uploaded++
	}

	slog.Info("storyboard archived", "client", client, "prefix", prefix, "uploaded", uploaded)
}

func extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
