package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drbusiness/platform/internal/stripe"
)

func newProofContext(t *testing.T, clientID, filename string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("proof", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/clients/:id/payment-proof", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(clientID)
	return c, rec
}

func TestHandleUploadPaymentProof(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	dir := t.TempDir()
	h := NewPaymentHandler(queries, nil, dir, 1<<20)

	client, err := CreateTestClient(queries, "owner@bakery.com", StatusPending)
	require.NoError(t, err)

	c, rec := newProofContext(t, client.ID, "transfer.png", []byte("fake png bytes"))
	require.NoError(t, h.HandleUploadPaymentProof(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	proofs, err := queries.ListPaymentProofsByClient(c.Request().Context(), client.ID)
	require.NoError(t, err)
	require.Len(t, proofs, 1)

	saved, err := os.ReadFile(proofs[0].FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), saved)
	assert.Equal(t, dir, filepath.Dir(proofs[0].FilePath))
}

func TestHandleUploadPaymentProof_UnknownClient(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewPaymentHandler(queries, nil, t.TempDir(), 1<<20)

	c, _ := newProofContext(t, "missing", "transfer.png", []byte("x"))
	err := h.HandleUploadPaymentProof(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestHandleUploadPaymentProof_TooLarge(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewPaymentHandler(queries, nil, t.TempDir(), 8)

	client, err := CreateTestClient(queries, "owner@bakery.com", StatusPending)
	require.NoError(t, err)

	c, _ := newProofContext(t, client.ID, "transfer.png", bytes.Repeat([]byte("a"), 64))
	err = h.HandleUploadPaymentProof(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.Code)
}

func TestHandleUploadPaymentProof_BadExtension(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewPaymentHandler(queries, nil, t.TempDir(), 1<<20)

	client, err := CreateTestClient(queries, "owner@bakery.com", StatusPending)
	require.NoError(t, err)

	c, _ := newProofContext(t, client.ID, "proof.exe", []byte("x"))
	err = h.HandleUploadPaymentProof(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHandleCreateCheckoutSession_NoStripe(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewPaymentHandler(queries, nil, t.TempDir(), 1<<20)

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", checkoutRequest{PackageName: Packages[0].Name})
	err := h.HandleCreateCheckoutSession(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
}

func TestHandleCreateCheckoutSession_UnknownPackage(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	checkout := stripe.NewCheckoutService("sk_test_fake", "http://localhost:8000")
	h := NewPaymentHandler(queries, checkout, t.TempDir(), 1<<20)

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", checkoutRequest{PackageName: "no such tier"})
	err := h.HandleCreateCheckoutSession(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHandleListPaymentProofs(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	dir := t.TempDir()
	h := NewPaymentHandler(queries, nil, dir, 1<<20)

	client, err := CreateTestClient(queries, "owner@bakery.com", StatusPending)
	require.NoError(t, err)

	c, _ := newProofContext(t, client.ID, "first.png", []byte("a"))
	require.NoError(t, h.HandleUploadPaymentProof(c))
	c, _ = newProofContext(t, client.ID, "second.jpg", []byte("b"))
	require.NoError(t, h.HandleUploadPaymentProof(c))

	c, rec := NewTestContext(http.MethodGet, "/api/clients/:id/payment-proofs", nil)
	c.SetParamNames("id")
	c.SetParamValues(client.ID)
	require.NoError(t, h.HandleListPaymentProofs(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
