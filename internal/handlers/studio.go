package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/brand"
	"github.com/drbusiness/platform/internal/imagegen"
	"github.com/drbusiness/platform/internal/prescription"
	"github.com/drbusiness/platform/internal/share"
	"github.com/drbusiness/platform/internal/studio"
)

// StudioHandler serves the image workbench: generative edits, deterministic
// branding, design cards, and share links.
type StudioHandler struct {
	editor brand.Editor
}

func NewStudioHandler(editor brand.Editor) *StudioHandler {
	return &StudioHandler{editor: editor}
}

type editImageRequest struct {
	Base64ImageData string `json:"base64ImageData"`
	MimeType        string `json:"mimeType"`
	Prompt          string `json:"prompt"`
}

// HandleEditImage applies a free-form generative edit and returns the result
// as a data URL.
func (h *StudioHandler) HandleEditImage(c echo.Context) error {
	if h.editor == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req editImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Prompt is required.")
	}

	base, err := decodeImagePayload(req.Base64ImageData, req.MimeType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid image data.")
	}

	edited, err := h.editor.Edit(c.Request().Context(), base, nil, req.Prompt)
	if err != nil {
		slog.Error("image edit failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to edit image.")
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": edited.DataURL()})
}

type brandImageRequest struct {
	Base64ImageData string `json:"base64ImageData"`
	MimeType        string `json:"mimeType"`
	LogoImage       string `json:"logoImage"`
}

// HandleBrandImage runs the deterministic logo composite only.
func (h *StudioHandler) HandleBrandImage(c echo.Context) error {
	var req brandImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	base, err := decodeImagePayload(req.Base64ImageData, req.MimeType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid image data.")
	}
	logo := prescription.DecodeLogo(req.LogoImage)
	if logo.Empty() {
		return echo.NewHTTPError(http.StatusBadRequest, "A logo image is required.")
	}

	branded, err := brand.Composite(base, logo, brand.DefaultOptions())
	if err != nil {
		slog.Error("composite branding failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Could not brand image.")
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": branded.DataURL()})
}

type designCardRequest struct {
	BusinessName string `json:"businessName"`
	Field        string `json:"field"`
	LogoImage    string `json:"logoImage,omitempty"`
}

// HandleDesignCard renders the deterministic fallback card for a post with
// no generated image.
func (h *StudioHandler) HandleDesignCard(c echo.Context) error {
	var req designCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	card, err := studio.Render(studio.Card{
		BusinessName: req.BusinessName,
		Field:        req.Field,
		Logo:         prescription.DecodeLogo(req.LogoImage),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": card.DataURL()})
}

type shareLinksRequest struct {
	Post    prescription.DetailedPost `json:"post"`
	PageURL string                    `json:"pageUrl"`
}

// HandleShareLinks builds share-intent URLs for a generated post.
func (h *StudioHandler) HandleShareLinks(c echo.Context) error {
	var req shareLinksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Post.Caption == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A post with a caption is required.")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"text":  share.PostText(req.Post),
		"links": share.Links(req.Post, req.PageURL),
	})
}

func decodeImagePayload(data, mimeType string) (imagegen.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(raw) == 0 {
		return imagegen.Image{}, &imagegen.SynthesisError{Err: err}
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return imagegen.Image{Bytes: raw, MimeType: mimeType}, nil
}
