// Seeds a local database with fake pending and active clients so the
// admin dashboard has something to show during development.
//
// Usage: DB_PATH=./data/database.db go run ./scripts/seed-demo
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/oklog/ulid/v2"

	"github.com/drbusiness/platform/internal/consultation"
	"github.com/drbusiness/platform/internal/handlers"
	"github.com/drbusiness/platform/storage"
	"github.com/drbusiness/platform/storage/db"
)

const (
	numPendingClients = 8
	numActiveClients  = 12
)

var businessFields = []string{
	"bakery", "coffee shop", "fitness studio", "dental clinic",
	"fashion boutique", "restaurant", "phone repair", "beauty salon",
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/database.db"
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	for i := 0; i < numPendingClients; i++ {
		if _, err := seedClient(ctx, store.Queries, handlers.StatusPending); err != nil {
			log.Fatalf("Failed to seed pending client: %v", err)
		}
	}
	for i := 0; i < numActiveClients; i++ {
		if _, err := seedClient(ctx, store.Queries, handlers.StatusActive); err != nil {
			log.Fatalf("Failed to seed active client: %v", err)
		}
	}

	fmt.Printf("Seeded %d pending and %d active clients into %s\n",
		numPendingClients, numActiveClients, dbPath)
}

func seedClient(ctx context.Context, queries *db.Queries, status string) (db.Client, error) {
	company := gofakeit.Company()
	field := businessFields[gofakeit.Number(0, len(businessFields)-1)]

	doc := consultation.ConsultationData{
		Business: consultation.BusinessData{
			Name:        company,
			Field:       field,
			Description: gofakeit.Sentence(12),
			Location:    gofakeit.City(),
			Website:     gofakeit.URL(),
		},
		Goals: consultation.MarketingGoals{
			Awareness:  gofakeit.Bool(),
			Sales:      gofakeit.Bool(),
			Engagement: true,
		},
		Audience: consultation.TargetAudience{
			Description: gofakeit.Sentence(8),
		},
	}

	consultationJSON, err := json.Marshal(doc)
	if err != nil {
		return db.Client{}, err
	}

	connectionsJSON, err := json.Marshal(handlers.Connections{
		Instagram: gofakeit.Bool(),
		Facebook:  gofakeit.Bool(),
	})
	if err != nil {
		return db.Client{}, err
	}

	return queries.CreateClient(ctx, db.CreateClientParams{
		ID:               ulid.Make().String(),
		Email:            gofakeit.Email(),
		Status:           status,
		ConsultationData: string(consultationJSON),
		Connections:      string(connectionsJSON),
	})
}
