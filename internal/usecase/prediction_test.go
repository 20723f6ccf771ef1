package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	domrepo "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/cache"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
)

type fakeData struct {
	bars map[string]models.Bar
}

func (f *fakeData) LatestBar(ticker string) (models.Bar, bool) {
	b, ok := f.bars[ticker]
	return b, ok
}

func (f *fakeData) CloseHistory(ticker string, n int) []float64 {
	if _, ok := f.bars[ticker]; !ok {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = f.bars[ticker].Close
	}
	return out
}

func (f *fakeData) Tickers() []string {
	out := make([]string, 0, len(f.bars))
	for t := range f.bars {
		out = append(out, t)
	}
	return out
}

type fakeForecaster struct {
	calls    int
	forecast models.Forecast
	err      error
}

func (f *fakeForecaster) PredictNextDay(_ context.Context, _ *models.ModelContext, _ domrepo.MarketData, _ string, _ int) (models.Forecast, error) {
	f.calls++
	if f.err != nil {
		return models.Forecast{}, f.err
	}
	return f.forecast, nil
}

type fakePublisher struct {
	published []*models.PredictionEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, e *models.PredictionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	hits, misses int
	errors       map[string]int
}

func newFakeMetrics() *fakeMetrics              { return &fakeMetrics{errors: map[string]int{}} }
func (m *fakeMetrics) RecordServed(string)      {}
func (m *fakeMetrics) RecordCacheHit()          { m.hits++ }
func (m *fakeMetrics) RecordCacheMiss()         { m.misses++ }
func (m *fakeMetrics) RecordError(kind string)  { m.errors[kind]++ }
func (m *fakeMetrics) RecordPredictedPrice(string, float64) {}
func (m *fakeMetrics) RecordLatency(string, float64)        {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func infyData() *fakeData {
	return &fakeData{bars: map[string]models.Bar{
		"INFY": {
			Ticker: "INFY",
			Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), // Friday
			Close:  1500.0,
		},
	}}
}

func newService(t *testing.T, clock func() time.Time, fc *fakeForecaster, pub domrepo.Publisher, m domrepo.Metrics) *PredictionService {
	t.Helper()
	return NewPredictionService(
		cache.New(clock),
		&models.ModelContext{},
		infyData(),
		fc,
		pub,
		m,
		testLogger(t),
		10,
	)
}

func TestPredictSuccess(t *testing.T) {
	fc := &fakeForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	svc := newService(t, nil, fc, nil, newFakeMetrics())

	got, err := svc.Predict(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Ticker != "INFY" || got.Status != "success" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.LatestDate != "2024-01-05" || got.LatestPrice != 1500.0 {
		t.Fatalf("unexpected latest fields %+v", got)
	}
	// Friday close predicts Monday.
	if got.PredictedDate != "2024-01-08" {
		t.Fatalf("unexpected predicted date %s", got.PredictedDate)
	}
	if got.PredictedPrice != 1530.0 || got.NormalizedPrediction != 0.53 {
		t.Fatalf("unexpected prediction fields %+v", got)
	}
	if math.Abs(got.PercentChange-2.0) > 1e-9 {
		t.Fatalf("unexpected percent change %v", got.PercentChange)
	}
}

func TestPredictCacheHitIsIdempotent(t *testing.T) {
	fc := &fakeForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	m := newFakeMetrics()
	svc := newService(t, nil, fc, nil, m)

	first, err := svc.Predict(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	second, err := svc.Predict(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached entry on the second call")
	}
	if fc.calls != 1 {
		t.Fatalf("expected 1 forecast call, got %d", fc.calls)
	}
	if m.hits != 1 || m.misses != 1 {
		t.Fatalf("unexpected cache counters hits=%d misses=%d", m.hits, m.misses)
	}
}

func TestPredictRecomputesAfterDailyBoundary(t *testing.T) {
	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	fc := &fakeForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	svc := newService(t, func() time.Time { return now }, fc, nil, newFakeMetrics())

	if _, err := svc.Predict(context.Background(), "INFY"); err != nil {
		t.Fatalf("predict: %v", err)
	}
	now = now.Add(24 * time.Hour)
	if _, err := svc.Predict(context.Background(), "INFY"); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if fc.calls != 2 {
		t.Fatalf("expected recompute after boundary, calls=%d", fc.calls)
	}
}

func TestPredictUnavailable(t *testing.T) {
	svc := NewPredictionService(
		cache.New(nil),
		nil, // model failed to load
		infyData(),
		&fakeForecaster{},
		nil,
		newFakeMetrics(),
		testLogger(t),
		10,
	)

	_, err := svc.Predict(context.Background(), "INFY")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestPredictFailureIsNotCached(t *testing.T) {
	fc := &fakeForecaster{err: errors.New("numerical blowup")}
	svc := newService(t, nil, fc, nil, newFakeMetrics())

	if _, err := svc.Predict(context.Background(), "INFY"); err == nil {
		t.Fatalf("expected forecast error")
	}

	// The failure must not block a later successful request.
	fc.err = nil
	fc.forecast = models.Forecast{Normalized: 0.53, Denormalized: 1530.0}
	got, err := svc.Predict(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("predict after failure: %v", err)
	}
	if got.Status != "success" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if fc.calls != 2 {
		t.Fatalf("expected both calls to reach the forecaster, got %d", fc.calls)
	}
}

func TestPredictPublishesEvent(t *testing.T) {
	fc := &fakeForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	pub := &fakePublisher{}
	svc := newService(t, nil, fc, pub, newFakeMetrics())

	if _, err := svc.Predict(context.Background(), "INFY"); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	if pub.published[0].Ticker != "INFY" || pub.published[0].PredictedDate != "2024-01-08" {
		t.Fatalf("unexpected event %+v", pub.published[0])
	}
}

func TestPredictPublishFailureDoesNotFailRequest(t *testing.T) {
	fc := &fakeForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	pub := &fakePublisher{err: errors.New("broker down")}
	m := newFakeMetrics()
	svc := newService(t, nil, fc, pub, m)

	got, err := svc.Predict(context.Background(), "INFY")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Status != "success" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if m.errors["publish"] != 1 {
		t.Fatalf("expected publish error to be recorded, got %v", m.errors)
	}
}
