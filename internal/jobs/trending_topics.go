// Package jobs runs the background workers behind the dashboards.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/drbusiness/platform/internal/prescription"
)

const (
	// TrendingRefreshInterval is how often the cached trends report is rebuilt.
	TrendingRefreshInterval = time.Hour
)

// TrendingTopicsRefresher keeps a cached trending topics report warm so the
// dashboard endpoint does not pay a model round trip per request.
type TrendingTopicsRefresher struct {
	gen    *prescription.Generator
	ticker *time.Ticker
	done   chan bool

	mu     sync.RWMutex
	report string
}

func NewTrendingTopicsRefresher(gen *prescription.Generator) *TrendingTopicsRefresher {
	return &TrendingTopicsRefresher{
		gen:  gen,
		done: make(chan bool),
	}
}

// Start begins the trending topics refresh background job
func (r *TrendingTopicsRefresher) Start(ctx context.Context) {
	slog.Info("starting trending topics refresher", "interval", TrendingRefreshInterval)

	// Run immediately on start
	r.refresh(ctx)

	// Then run on interval
	r.ticker = time.NewTicker(TrendingRefreshInterval)

	go func() {
		for {
			select {
			case <-r.ticker.C:
				r.refresh(ctx)
			case <-r.done:
				slog.Info("trending topics refresher stopped")
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the background job
func (r *TrendingTopicsRefresher) Stop() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
	close(r.done)
}

// Topics returns the cached report, fetching one live when the cache is cold.
func (r *TrendingTopicsRefresher) Topics(ctx context.Context) (string, error) {
	r.mu.RLock()
	report := r.report
	r.mu.RUnlock()
	if report != "" {
		return report, nil
	}

	report, err := r.gen.TrendingTopics(ctx)
	if err != nil {
		return "", err
	}
	r.store(report)
	return report, nil
}

func (r *TrendingTopicsRefresher) refresh(ctx context.Context) {
	slog.Debug("refreshing trending topics report")
	report, err := r.gen.TrendingTopics(ctx)
	if err != nil {
		slog.Warn("trending topics refresh failed, keeping previous report", "error", err)
		return
	}
	r.store(report)
	slog.Info("trending topics report refreshed", "length", len(report))
}

func (r *TrendingTopicsRefresher) store(report string) {
	r.mu.Lock()
	r.report = report
	r.mu.Unlock()
}
