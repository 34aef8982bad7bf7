// Package imagegen talks to the Gemini image models over plain REST: one call
// to synthesize a marketing graphic from a visual prompt, one to edit an
// existing image with extra reference images (used for generative branding).
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 120 * time.Second
)

// Image is raw encoded image data with its MIME type.
type Image struct {
	Bytes    []byte
	MimeType string
}

// Empty reports whether the image carries no data.
func (i Image) Empty() bool { return len(i.Bytes) == 0 }

// DataURL renders the image as a base64 data URL.
func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MimeType, base64.StdEncoding.EncodeToString(i.Bytes))
}

// SynthesisError means the image model call failed or returned no image part.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return fmt.Sprintf("image synthesis failed: %v", e.Err) }
func (e *SynthesisError) Unwrap() error { return e.Err }

// Client calls Gemini image models through the generateContent REST endpoint.
type Client struct {
	apiKey     string
	model      string
	editModel  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given synthesis and edit model names.
func NewClient(apiKey, model, editModel string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		editModel:  editModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithBaseURL points the client at a different API host. Used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content contentResponse `json:"content"`
}

type contentResponse struct {
	Parts []partResponse `json:"parts"`
}

type partResponse struct {
	Text       string          `json:"text,omitempty"`
	InlineData *inlineDataResp `json:"inlineData,omitempty"`
}

type inlineDataResp struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Synthesize generates a square marketing graphic for a visual prompt. The
// prompt is wrapped in a fixed framing that keeps the output text-free and
// leaves a corner clear for the logo.
func (c *Client) Synthesize(ctx context.Context, visualPrompt string) (Image, error) {
	framed := fmt.Sprintf(`A high-impact, professional social media marketing graphic. Vibrant colors, dynamic composition, clean and modern style, suitable for an Arab audience. Based on this creative brief: "%s". Leave a clean, unobtrusive space in one of the corners for a brand logo. Do not include any text unless specifically asked.`, visualPrompt)

	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: framed}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: "1:1"},
		},
	}

	img, err := c.generate(ctx, c.model, req)
	if err != nil {
		return Image{}, &SynthesisError{Err: err}
	}
	return img, nil
}

// Edit sends a base image plus optional auxiliary images (e.g. a logo) and an
// instruction to the edit model and returns the edited image.
func (c *Client) Edit(ctx context.Context, base Image, aux []Image, instruction string) (Image, error) {
	if base.Empty() {
		return Image{}, fmt.Errorf("edit: empty base image")
	}

	parts := []geminiPart{
		{InlineData: &inlineData{MimeType: base.MimeType, Data: base64.StdEncoding.EncodeToString(base.Bytes)}},
	}
	for _, a := range aux {
		if a.Empty() {
			continue
		}
		parts = append(parts, geminiPart{
			InlineData: &inlineData{MimeType: a.MimeType, Data: base64.StdEncoding.EncodeToString(a.Bytes)},
		})
	}
	parts = append(parts, geminiPart{Text: instruction})

	req := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	return c.generate(ctx, c.editModel, req)
}

func (c *Client) generate(ctx context.Context, model string, req geminiRequest) (Image, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return Image{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return Image{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Image{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return Image{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if geminiResp.Error != nil {
		return Image{}, fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	for _, cand := range geminiResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return Image{}, fmt.Errorf("decode image: %w", err)
				}
				mime := part.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				return Image{Bytes: data, MimeType: mime}, nil
			}
		}
	}

	return Image{}, fmt.Errorf("no image in API response")
}
