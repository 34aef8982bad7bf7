package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/imagegen"
	"github.com/drbusiness/platform/internal/imagehost"
	"github.com/drbusiness/platform/internal/prescription"
	"github.com/drbusiness/platform/storage/db"
)

const aiUnavailableMessage = "AI service not initialized."

// TopicsProvider serves the trending topics report, possibly from a cache.
type TopicsProvider interface {
	Topics(ctx context.Context) (string, error)
}

// AIHandler exposes the generation pipeline over HTTP. assembler and
// generator are nil when no Gemini key is configured; every endpoint then
// answers 503.
type AIHandler struct {
	assembler *prescription.Assembler
	generator *prescription.Generator
	queries   *db.Queries
	trending  TopicsProvider
}

func NewAIHandler(assembler *prescription.Assembler, generator *prescription.Generator, queries *db.Queries, trending TopicsProvider) *AIHandler {
	return &AIHandler{
		assembler: assembler,
		generator: generator,
		queries:   queries,
		trending:  trending,
	}
}

func (h *AIHandler) available() bool {
	return h.assembler != nil && h.generator != nil
}

// aiError maps pipeline errors onto HTTP status codes.
func aiError(err error) error {
	var (
		verr *consultation.ValidationError
		gerr *prescription.GenerationFailure
		ferr *prescription.GenerationFormatError
		serr *imagegen.SynthesisError
		uerr *imagehost.UploadError
	)
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	case errors.As(err, &gerr), errors.As(err, &ferr), errors.As(err, &serr), errors.As(err, &uerr):
		slog.Error("generation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to generate content.")
	default:
		slog.Error("unexpected generation error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate content.")
	}
}

type prescriptionRequest struct {
	ClientID         string                        `json:"clientId,omitempty"`
	ConsultationData consultation.ConsultationData `json:"consultationData"`
}

// HandleGeneratePrescription runs the full pipeline and, when a client id is
// supplied, persists the result on that client.
func (h *AIHandler) HandleGeneratePrescription(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	p, err := h.assembler.GeneratePrescription(c.Request().Context(), req.ConsultationData)
	if err != nil {
		return aiError(err)
	}

	if req.ClientID != "" {
		if err := h.savePrescription(c, req.ClientID, p); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, p)
}

type weekPlanRequest struct {
	ClientID         string                        `json:"clientId,omitempty"`
	Week             int                           `json:"week,omitempty"`
	ConsultationData consultation.ConsultationData `json:"consultationData"`
	Posts            []prescription.SimplePost     `json:"posts"`
}

// HandleGenerateWeekPlan expands a future week into detailed posts. With a
// client id and week number, the expansion is stored under detailedPlans.
func (h *AIHandler) HandleGenerateWeekPlan(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req weekPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Posts) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Post ideas are required.")
	}

	posts, err := h.assembler.AssembleDetailedWeek(c.Request().Context(), req.ConsultationData, req.Posts)
	if err != nil {
		return aiError(err)
	}

	if req.ClientID != "" && req.Week > 0 {
		if err := h.saveDetailedWeek(c, req.ClientID, req.Week, posts); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, posts)
}

type captionVariationsRequest struct {
	OriginalCaption string `json:"originalCaption"`
	BusinessContext string `json:"businessContext"`
}

func (h *AIHandler) HandleCaptionVariations(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req captionVariationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.OriginalCaption == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Original caption is required.")
	}

	variations, err := h.generator.GenerateCaptionVariations(c.Request().Context(), req.OriginalCaption, req.BusinessContext)
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"variations": variations})
}

type elaborateStepRequest struct {
	BusinessContext string `json:"businessContext"`
	Step            string `json:"step"`
}

func (h *AIHandler) HandleElaborateStep(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req elaborateStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Step == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Step is required.")
	}

	text, err := h.generator.ElaborateStrategyStep(c.Request().Context(), req.BusinessContext, req.Step)
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

type analyticsRequest struct {
	BusinessContext string `json:"businessContext"`
}

func (h *AIHandler) HandleAnalytics(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req analyticsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	snap, err := h.generator.GenerateAnalytics(c.Request().Context(), req.BusinessContext)
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

type enhancePromptRequest struct {
	Prompt string `json:"prompt"`
}

func (h *AIHandler) HandleEnhancePrompt(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req enhancePromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Prompt is required.")
	}

	text, err := h.generator.EnhanceVisualPrompt(c.Request().Context(), req.Prompt)
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

func (h *AIHandler) HandleTrendingTopics(c echo.Context) error {
	if h.trending == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	text, err := h.trending.Topics(c.Request().Context())
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

type postImageRequest struct {
	ClientID         string                        `json:"clientId,omitempty"`
	ConsultationData consultation.ConsultationData `json:"consultationData"`
	Post             prescription.DetailedPost     `json:"post"`
}

// HandleRegeneratePostImage redoes the image pipeline for one post. The new
// URL replaces the old one; there is no version history.
func (h *AIHandler) HandleRegeneratePostImage(c echo.Context) error {
	if !h.available() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, aiUnavailableMessage)
	}
	var req postImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Post.VisualPrompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Visual prompt is required.")
	}

	url, err := h.assembler.RegeneratePostImage(c.Request().Context(), req.ConsultationData, req.Post)
	if err != nil {
		return aiError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": url})
}

// savePrescription stores the assembled prescription on the client record.
func (h *AIHandler) savePrescription(c echo.Context, clientID string, p *prescription.Prescription) error {
	doc, err := nullDoc(p)
	if err != nil {
		slog.Error("failed to encode prescription", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save prescription.")
	}
	err = h.queries.UpdateClientPrescription(c.Request().Context(), db.UpdateClientPrescriptionParams{
		Prescription: doc,
		ID:           clientID,
	})
	if err != nil {
		slog.Error("failed to save prescription", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save prescription.")
	}
	return nil
}

// saveDetailedWeek merges an expanded week into the stored prescription.
func (h *AIHandler) saveDetailedWeek(c echo.Context, clientID string, week int, posts []prescription.DetailedPost) error {
	ctx := c.Request().Context()
	row, err := h.queries.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to load client for week plan", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save week plan.")
	}

	client, err := clientFromRow(row)
	if err != nil || client.Prescription == nil {
		slog.Error("client has no stored prescription", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusConflict, "Client has no prescription to update.")
	}

	if client.Prescription.DetailedPlans == nil {
		client.Prescription.DetailedPlans = make(map[int][]prescription.DetailedPost)
	}
	client.Prescription.DetailedPlans[week] = posts

	return h.savePrescription(c, clientID, client.Prescription)
}
