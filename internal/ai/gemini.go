// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai is the Gemini generation client. It talks to the REST API
// (POST /v1beta/models/{model}:generateContent) directly and maps every
// failure onto MissingCredentialError, ServiceCallError or SchemaError.
// No call is retried.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pawtune/internal/models"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com"
	DefaultModel          = "gemini-3-pro-preview"
	DefaultFastModel      = "gemini-3-flash-preview"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultThinkingBudget = 4000
	DefaultImageSize      = "1K"
	DefaultTimeout        = 180 * time.Second
)

// Config holds the model names and transport settings. The API key is
// not part of it: every call takes the credential explicitly.
type Config struct {
	BaseURL        string
	Model          string // structured generation and extraction
	FastModel      string // credential check
	ImageModel     string
	ThinkingBudget int
	ImageSize      string
	Timeout        time.Duration
}

// Client calls the Gemini REST API. It is safe for concurrent use.
type Client struct {
	config Config
	client *http.Client
}

// New creates a Gemini client, filling empty config fields with defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.FastModel == "" {
		cfg.FastModel = DefaultFastModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.ThinkingBudget == 0 {
		cfg.ThinkingBudget = DefaultThinkingBudget
	}
	if cfg.ImageSize == "" {
		cfg.ImageSize = DefaultImageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// GenerateStructured sends body with the system instruction and asks for
// JSON matching schema. The returned text is checked against schema and
// then decoded into out. Any mismatch is a *SchemaError.
func (c *Client) GenerateStructured(ctx context.Context, apiKey, systemInstruction, body string, schema *Schema, out any) error {
	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{userContent(geminiPart{Text: body})},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
			ThinkingConfig:   &geminiThinkingConfig{ThinkingBudget: c.config.ThinkingBudget},
		},
	}

	resp, err := c.generateContent(ctx, "generate", apiKey, c.config.Model, req)
	if err != nil {
		return err
	}

	text := resp.text()
	if strings.TrimSpace(text) == "" {
		return &SchemaError{Path: "$", Err: fmt.Errorf("empty response")}
	}

	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return &SchemaError{Path: "$", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(raw); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &SchemaError{Path: "$", Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// GenerateResult runs a structured generation against GenerationSchema.
func (c *Client) GenerateResult(ctx context.Context, apiKey, systemInstruction, body string) (*models.GenerationResult, error) {
	var result models.GenerationResult
	if err := c.GenerateStructured(ctx, apiKey, systemInstruction, body, GenerationSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks a credential with a trivial request against the fast model.
// It returns nil only when the service accepted the call.
func (c *Client) Ping(ctx context.Context, apiKey string) error {
	req := geminiRequest{
		Contents: []geminiContent{userContent(geminiPart{Text: "ping"})},
	}
	_, err := c.generateContent(ctx, "ping", apiKey, c.config.FastModel, req)
	return err
}

// GenerateText sends a plain prompt and returns the response text, or
// fallback when the model produced none.
func (c *Client) GenerateText(ctx context.Context, apiKey, prompt, fallback string) (string, error) {
	temperature, topP := 0.7, 0.95
	req := geminiRequest{
		Contents: []geminiContent{userContent(geminiPart{Text: prompt})},
		GenerationConfig: &geminiGenerationConfig{
			Temperature: &temperature,
			TopP:        &topP,
		},
	}
	resp, err := c.generateContent(ctx, "extract", apiKey, c.config.Model, req)
	if err != nil {
		return "", err
	}
	if text := resp.text(); text != "" {
		return text, nil
	}
	return fallback, nil
}

// ImageRequest is one storyboard image call.
type ImageRequest struct {
	Prompt      string
	References  []string // base64 PNG, sent before the prompt
	AspectRatio string
}

// GenerateImage asks the image model for one picture and returns the first
// inline payload of the first candidate.
func (c *Client) GenerateImage(ctx context.Context, apiKey string, ir ImageRequest) (*models.GeneratedImage, error) {
	parts := make([]geminiPart, 0, len(ir.References)+1)
	for _, ref := range ir.References {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{MimeType: "image/png", Data: ref}})
	}
	parts = append(parts, geminiPart{Text: ir.Prompt})

	req := geminiRequest{
		Contents: []geminiContent{userContent(parts...)},
		GenerationConfig: &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{
				AspectRatio: ir.AspectRatio,
				ImageSize:   c.config.ImageSize,
			},
		},
	}

	resp, err := c.generateContent(ctx, "image", apiKey, c.config.ImageModel, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) > 0 {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mime := part.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				return &models.GeneratedImage{MimeType: mime, Data: part.InlineData.Data}, nil
			}
		}
	}
	return nil, &ServiceCallError{Op: "image", Message: "no image data in response"}
}

// generateContent performs one generateContent call and decodes the envelope.
func (c *Client) generateContent(ctx context.Context, op, apiKey, model string, body geminiRequest) (*geminiResponse, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &MissingCredentialError{Op: op}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ServiceCallError{Op: op, Message: err.Error(), Err: fmt.Errorf("gemini http: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceCallError{Op: op, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceCallError{Op: op, StatusCode: resp.StatusCode, Message: apiErrorMessage(respBody)}
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &ServiceCallError{Op: op, StatusCode: resp.StatusCode, Message: "unreadable response", Err: err}
	}
	if len(result.Candidates) == 0 {
		msg := "no candidates returned"
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			msg = "prompt blocked: " + result.PromptFeedback.BlockReason
		}
		return nil, &ServiceCallError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}
	return &result, nil
}

// apiErrorMessage pulls error.message out of a Gemini error body, falling
// back to the raw body.
func apiErrorMessage(body []byte) string {
	var env geminiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func userContent(parts ...geminiPart) geminiContent {
	return geminiContent{Role: "user", Parts: parts}
}

// --- Gemini API types ---

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Thought    bool              `json:"thought,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      *float64              `json:"temperature,omitempty"`
	TopP             *float64              `json:"topP,omitempty"`
	ResponseMimeType string                `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema               `json:"responseSchema,omitempty"`
	ThinkingConfig   *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
	ImageConfig      *geminiImageConfig    `json:"imageConfig,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
}

// text joins the non-thought text parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

type geminiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
