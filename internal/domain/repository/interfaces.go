package repository

import (
	"context"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
)

// MarketData is the historical price dataset, loaded once at startup and
// immutable for the process lifetime.
type MarketData interface {
	// LatestBar returns the most recent bar for a ticker, by date.
	LatestBar(ticker string) (models.Bar, bool)
	// CloseHistory returns up to n most recent closes for a ticker in
	// ascending date order. Fewer than n are returned when history is short.
	CloseHistory(ticker string, n int) []float64
	// Tickers lists every ticker present in the dataset.
	Tickers() []string
}

// Publisher emits prediction events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e *models.PredictionEvent) error
	Close() error
}

// Metrics records service-level measurements.
type Metrics interface {
	RecordServed(status string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordError(kind string)
	RecordPredictedPrice(ticker string, price float64)
	RecordLatency(op string, seconds float64)
}
