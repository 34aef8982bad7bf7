// Package handlers implements the JSON API surface: auth, client CRUD and
// activation, packages, payments, and the AI generation endpoints.
package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/prescription"
	"github.com/drbusiness/platform/storage/db"
)

const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// Connections tracks which social accounts the client linked.
type Connections struct {
	Facebook  bool `json:"facebook"`
	Instagram bool `json:"instagram"`
	TikTok    bool `json:"tiktok"`
	X         bool `json:"x"`
	LinkedIn  bool `json:"linkedin"`
}

// Package is a pricing tier.
type Package struct {
	Name       string   `json:"name"`
	Price      int      `json:"price"`
	Features   []string `json:"features"`
	IsFeatured bool     `json:"isFeatured"`
}

// Client is the wire shape of a client record. The nested documents live as
// JSON columns and are replaced whole on update.
type Client struct {
	ID               string                        `json:"id"`
	Email            string                        `json:"email"`
	Status           string                        `json:"status"`
	ConsultationData consultation.ConsultationData `json:"consultationData"`
	Prescription     *prescription.Prescription    `json:"prescription,omitempty"`
	SelectedPackage  *Package                      `json:"selectedPackage,omitempty"`
	Connections      Connections                   `json:"connections"`
	CreatedAt        time.Time                     `json:"createdAt"`
}

// clientFromRow decodes the JSON document columns of a stored client.
func clientFromRow(row db.Client) (Client, error) {
	c := Client{
		ID:        row.ID,
		Email:     row.Email,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.ConsultationData), &c.ConsultationData); err != nil {
		return Client{}, fmt.Errorf("decode consultation data for client %s: %w", row.ID, err)
	}
	if row.Connections != "" {
		if err := json.Unmarshal([]byte(row.Connections), &c.Connections); err != nil {
			return Client{}, fmt.Errorf("decode connections for client %s: %w", row.ID, err)
		}
	}
	if row.Prescription.Valid {
		c.Prescription = &prescription.Prescription{}
		if err := json.Unmarshal([]byte(row.Prescription.String), c.Prescription); err != nil {
			return Client{}, fmt.Errorf("decode prescription for client %s: %w", row.ID, err)
		}
	}
	if row.SelectedPackage.Valid {
		c.SelectedPackage = &Package{}
		if err := json.Unmarshal([]byte(row.SelectedPackage.String), c.SelectedPackage); err != nil {
			return Client{}, fmt.Errorf("decode selected package for client %s: %w", row.ID, err)
		}
	}
	return c, nil
}

func marshalDoc(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullDoc(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	s, err := marshalDoc(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}
