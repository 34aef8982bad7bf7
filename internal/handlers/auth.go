package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/auth"
	"github.com/drbusiness/platform/storage/db"
)

// pendingAccountMessage tells a not-yet-activated client their account is
// still under review.
const pendingAccountMessage = "حسابك لسه بيتراجع. فريقنا هيفعله وهيبعتلك إشعار أول ما يخلص."

const badCredentialsMessage = "الإيميل أو الباسورد فيهم حاجة غلط. حاول تاني."

// AuthHandler handles login for admins and clients.
type AuthHandler struct {
	queries       *db.Queries
	tokens        *auth.Service
	adminEmail    string
	adminPassword string
}

func NewAuthHandler(queries *db.Queries, tokens *auth.Service, adminEmail, adminPassword string) *AuthHandler {
	return &AuthHandler{
		queries:       queries,
		tokens:        tokens,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Role     string `json:"role"`
	ClientID string `json:"clientId,omitempty"`
	Token    string `json:"token"`
}

// HandleLogin authenticates an admin by configured credentials or a client by
// email. Pending clients are refused until an admin activates them.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required.")
	}

	if h.adminPassword != "" && email == strings.ToLower(h.adminEmail) && req.Password == h.adminPassword {
		token, err := h.tokens.IssueToken(auth.RoleAdmin, "")
		if err != nil {
			slog.Error("failed to issue admin token", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login.")
		}
		return c.JSON(http.StatusOK, loginResponse{Role: auth.RoleAdmin, Token: token})
	}

	client, err := h.queries.GetClientByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, badCredentialsMessage)
		}
		slog.Error("login lookup failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login.")
	}

	if client.Status == StatusPending {
		return echo.NewHTTPError(http.StatusForbidden, pendingAccountMessage)
	}

	token, err := h.tokens.IssueToken(auth.RoleClient, client.ID)
	if err != nil {
		slog.Error("failed to issue client token", "error", err, "client_id", client.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login.")
	}

	slog.Info("client logged in", "client_id", client.ID)
	return c.JSON(http.StatusOK, loginResponse{Role: auth.RoleClient, ClientID: client.ID, Token: token})
}
