package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/storage"
	"github.com/drbusiness/platform/storage/db"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// NewTestDB creates a test database with migrations applied
func NewTestDB() (*sql.DB, *db.Queries, func()) {
	database, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return database, queries, cleanup
}

// TestConsultation returns a minimal valid consultation document.
func TestConsultation() consultation.ConsultationData {
	return consultation.ConsultationData{
		Business: consultation.BusinessData{
			Name:        "Sunrise Bakery",
			Field:       "bakery",
			Description: "Fresh sourdough and pastries in downtown Cairo.",
		},
		Goals:    consultation.MarketingGoals{Awareness: true, Sales: true},
		Audience: consultation.TargetAudience{Description: "Young professionals nearby"},
	}
}

// CreateTestClient inserts a client with the given email and status.
func CreateTestClient(queries *db.Queries, email, status string) (db.Client, error) {
	consultationDoc, err := marshalDoc(TestConsultation())
	if err != nil {
		return db.Client{}, err
	}
	connectionsDoc, err := marshalDoc(Connections{})
	if err != nil {
		return db.Client{}, err
	}
	return queries.CreateClient(context.Background(), db.CreateClientParams{
		ID:               ulid.Make().String(),
		Email:            email,
		Status:           status,
		ConsultationData: consultationDoc,
		Connections:      connectionsDoc,
	})
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
