package service

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/drbusiness/platform/internal/prescription"
)

const qrPDFSize = 256

// handlePrescriptionPDF renders the stored prescription as a printable PDF
// schedule. Captions are Arabic and the core PDF fonts cannot render them, so
// the PDF carries the schedule structure and a QR code into the dashboard
// where the full text lives.
func (s *Service) handlePrescriptionPDF(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	row, err := s.storage.Queries.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found.")
		}
		slog.Error("failed to load client for PDF", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not build PDF.")
	}
	if !row.Prescription.Valid {
		return echo.NewHTTPError(http.StatusNotFound, "Client has no prescription yet.")
	}

	var p prescription.Prescription
	if err := json.Unmarshal([]byte(row.Prescription.String), &p); err != nil {
		slog.Error("failed to decode stored prescription", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not build PDF.")
	}

	dashboardURL := fmt.Sprintf("%s/dashboard/%s", s.config.BaseURL, id)
	pdfBytes, err := buildPrescriptionPDF(&p, dashboardURL)
	if err != nil {
		slog.Error("failed to build prescription PDF", "error", err, "client_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not build PDF.")
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=prescription-%s.pdf", shortID(id)))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func buildPrescriptionPDF(p *prescription.Prescription, dashboardURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Marketing Prescription", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Marketing Prescription", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Strategy steps: %d", len(p.Strategy.Steps)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Week 1 posts: %d", len(p.Week1Plan)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Outlined weeks: %d", len(p.FutureWeeksPlan)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Week 1 Schedule", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, post := range p.Week1Plan {
		line := fmt.Sprintf("%d. %s - %s (%s)", i+1, post.Day, post.Platform, post.PostType)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		if post.GeneratedImage != "" {
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(0, 5, "    image: "+post.GeneratedImage, "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Upcoming Weeks", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, week := range p.FutureWeeksPlan {
		pdf.CellFormat(0, 6, fmt.Sprintf("Week %d: %d post ideas", week.Week, len(week.Posts)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	qr, err := qrcode.Encode(dashboardURL, qrcode.Medium, qrPDFSize)
	if err != nil {
		return nil, fmt.Errorf("generate dashboard QR code: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("dashboard-qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("dashboard-qr", 10, pdf.GetY(), 40, 40, false, opts, 0, "")

	pdf.SetXY(55, pdf.GetY()+15)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Scan to open the full plan with captions and images:", "", 1, "L", false, 0, "")
	pdf.SetX(55)
	pdf.SetTextColor(0, 0, 200)
	pdf.CellFormat(0, 6, dashboardURL, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
