package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/stripe"
	"github.com/drbusiness/platform/storage/db"
)

// PaymentHandler covers both payment paths: Stripe checkout for cards and a
// manual proof-of-transfer upload reviewed by an admin.
type PaymentHandler struct {
	queries   *db.Queries
	checkout  *stripe.CheckoutService
	uploadDir string
	maxSize   int64
}

func NewPaymentHandler(queries *db.Queries, checkout *stripe.CheckoutService, uploadDir string, maxSize int64) *PaymentHandler {
	return &PaymentHandler{
		queries:   queries,
		checkout:  checkout,
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

type checkoutRequest struct {
	PackageName string `json:"packageName"`
	Email       string `json:"email"`
}

// HandleCreateCheckoutSession starts a Stripe checkout for a pricing tier.
func (h *PaymentHandler) HandleCreateCheckoutSession(c echo.Context) error {
	if h.checkout == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Card payment is not available.")
	}
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pkg, ok := FindPackage(req.PackageName)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown package.")
	}

	session, err := h.checkout.CreatePackageSession(pkg.Name, int64(pkg.Price), req.Email)
	if err != nil {
		slog.Error("failed to create checkout session", "error", err, "package", pkg.Name)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not start checkout.")
	}

	slog.Info("checkout session created", "package", pkg.Name, "session_id", session.ID)
	return c.JSON(http.StatusOK, map[string]string{
		"sessionId":   session.ID,
		"checkoutUrl": session.URL,
	})
}

// HandleCheckoutSuccess confirms a completed checkout session.
func (h *PaymentHandler) HandleCheckoutSuccess(c echo.Context) error {
	if h.checkout == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Card payment is not available.")
	}
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required.")
	}

	session, err := h.checkout.GetSession(sessionID)
	if err != nil {
		slog.Error("failed to fetch checkout session", "error", err, "session_id", sessionID)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not verify payment.")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sessionId": session.ID,
		"paid":      session.PaymentStatus == "paid",
	})
}

// HandleUploadPaymentProof stores a bank-transfer screenshot for admin review.
func (h *PaymentHandler) HandleUploadPaymentProof(c echo.Context) error {
	clientID := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.queries.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to load client for payment proof", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save payment proof.")
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A proof file is required.")
	}
	if file.Size > h.maxSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File is too large.")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".pdf":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported file type.")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file.")
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		slog.Error("failed to create upload directory", "error", err, "dir", h.uploadDir)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save payment proof.")
	}

	name := fmt.Sprintf("%s-%s%s", clientID, uuid.New().String(), ext)
	dstPath := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		slog.Error("failed to create proof file", "error", err, "path", dstPath)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save payment proof.")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		slog.Error("failed to write proof file", "error", err, "path", dstPath)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save payment proof.")
	}

	proof, err := h.queries.CreatePaymentProof(ctx, db.CreatePaymentProofParams{
		ID:       uuid.New().String(),
		ClientID: clientID,
		FilePath: dstPath,
	})
	if err != nil {
		slog.Error("failed to record payment proof", "error", err, "client_id", clientID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save payment proof.")
	}

	slog.Info("payment proof uploaded", "client_id", clientID, "proof_id", proof.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"id":         proof.ID,
		"clientId":   proof.ClientID,
		"uploadedAt": proof.UploadedAt,
	})
}

// HandleListPaymentProofs lets an admin review a client's uploads.
func (h *PaymentHandler) HandleListPaymentProofs(c echo.Context) error {
	proofs, err := h.queries.ListPaymentProofsByClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		slog.Error("failed to list payment proofs", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not fetch payment proofs.")
	}

	out := make([]map[string]any, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, map[string]any{
			"id":         p.ID,
			"clientId":   p.ClientID,
			"filePath":   p.FilePath,
			"uploadedAt": p.UploadedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
