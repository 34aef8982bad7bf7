package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/prescription"
	"github.com/drbusiness/platform/storage/db"
)

// ClientHandler implements client CRUD and activation.
type ClientHandler struct {
	queries *db.Queries
}

func NewClientHandler(queries *db.Queries) *ClientHandler {
	return &ClientHandler{queries: queries}
}

type registrationDetails struct {
	Email string `json:"email"`
}

type registerClientRequest struct {
	RegDetails       registrationDetails           `json:"regDetails"`
	ConsultationData consultation.ConsultationData `json:"consultationData"`
	Prescription     *prescription.Prescription    `json:"prescription"`
	SelectedPackage  *Package                      `json:"selectedPackage"`
}

// HandleList returns all clients, pending first.
func (h *ClientHandler) HandleList(c echo.Context) error {
	rows, err := h.queries.ListClients(c.Request().Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not fetch clients.")
	}

	clients := make([]Client, 0, len(rows))
	for _, row := range rows {
		client, err := clientFromRow(row)
		if err != nil {
			slog.Error("failed to decode client row", "error", err, "client_id", row.ID)
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not fetch clients.")
		}
		clients = append(clients, client)
	}
	return c.JSON(http.StatusOK, clients)
}

// HandleGet returns a single client.
func (h *ClientHandler) HandleGet(c echo.Context) error {
	row, err := h.queries.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to get client", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not fetch client.")
	}

	client, err := clientFromRow(row)
	if err != nil {
		slog.Error("failed to decode client row", "error", err, "client_id", row.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not fetch client.")
	}
	return c.JSON(http.StatusOK, client)
}

// HandleCreate registers a new client in pending status with the documents
// produced during the consultation flow.
func (h *ClientHandler) HandleCreate(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.RegDetails.Email))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required.")
	}
	if err := req.ConsultationData.Validate(); err != nil {
		var verr *consultation.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid consultation data.")
	}

	consultationDoc, err := marshalDoc(req.ConsultationData)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
	}

	var prescriptionDoc, packageDoc sql.NullString
	if req.Prescription != nil {
		if prescriptionDoc, err = nullDoc(req.Prescription); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
		}
	}
	if req.SelectedPackage != nil {
		if packageDoc, err = nullDoc(req.SelectedPackage); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
		}
	}

	connectionsDoc, err := marshalDoc(Connections{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
	}

	row, err := h.queries.CreateClient(c.Request().Context(), db.CreateClientParams{
		ID:               ulid.Make().String(),
		Email:            email,
		Status:           StatusPending,
		ConsultationData: consultationDoc,
		Prescription:     prescriptionDoc,
		SelectedPackage:  packageDoc,
		Connections:      connectionsDoc,
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return echo.NewHTTPError(http.StatusConflict, "An account with this email already exists.")
		}
		slog.Error("failed to create client", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
	}

	client, err := clientFromRow(row)
	if err != nil {
		slog.Error("failed to decode created client", "error", err, "client_id", row.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not create client.")
	}

	slog.Info("client registered", "client_id", client.ID, "email", email)
	return c.JSON(http.StatusCreated, client)
}

// HandleUpdate replaces the client's documents whole. Email and status are
// not updatable through this endpoint.
func (h *ClientHandler) HandleUpdate(c echo.Context) error {
	id := c.Param("id")

	var req Client
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.ConsultationData.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultationDoc, err := marshalDoc(req.ConsultationData)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
	}
	var prescriptionDoc, packageDoc sql.NullString
	if req.Prescription != nil {
		if prescriptionDoc, err = nullDoc(req.Prescription); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
		}
	}
	if req.SelectedPackage != nil {
		if packageDoc, err = nullDoc(req.SelectedPackage); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
		}
	}
	connectionsDoc, err := marshalDoc(req.Connections)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
	}

	row, err := h.queries.UpdateClient(c.Request().Context(), db.UpdateClientParams{
		ConsultationData: consultationDoc,
		Prescription:     prescriptionDoc,
		SelectedPackage:  packageDoc,
		Connections:      connectionsDoc,
		ID:               id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to update client", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
	}

	client, err := clientFromRow(row)
	if err != nil {
		slog.Error("failed to decode updated client", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update client.")
	}
	return c.JSON(http.StatusOK, client)
}

// HandleActivate flips a pending client to active.
func (h *ClientHandler) HandleActivate(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.queries.GetClient(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to load client for activation", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not activate client.")
	}

	if err := h.queries.ActivateClient(ctx, id); err != nil {
		slog.Error("failed to activate client", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not activate client.")
	}

	slog.Info("client activated", "client_id", id)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Client activated."})
}
