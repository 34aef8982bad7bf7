// Package imagehost uploads generated images to an ImgBB-compatible hosting
// API and returns permanent public URLs for the prescription documents.
package imagehost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/drbusiness/platform/internal/imagegen"
)

const (
	defaultEndpoint = "https://api.imgbb.com/1/upload"
	defaultTimeout  = 60 * time.Second
)

// UploadError means the hosting service rejected the upload or was unreachable.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("image upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// Client posts base64 images to the hosting API with a static key.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload sends the image and returns its permanent URL.
func (c *Client) Upload(ctx context.Context, img imagegen.Image) (string, error) {
	if img.Empty() {
		return "", &UploadError{Err: fmt.Errorf("empty image")}
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(img.Bytes))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UploadError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UploadError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if parsed.Data.URL == "" {
		return "", &UploadError{Err: fmt.Errorf("no URL in response")}
	}
	return parsed.Data.URL, nil
}
