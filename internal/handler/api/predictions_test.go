package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	domrepo "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/cache"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/usecase"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/config"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
)

type stubData struct {
	bars map[string]models.Bar
}

func (s *stubData) LatestBar(ticker string) (models.Bar, bool) {
	b, ok := s.bars[ticker]
	return b, ok
}

func (s *stubData) CloseHistory(ticker string, n int) []float64 {
	if _, ok := s.bars[ticker]; !ok {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.bars[ticker].Close
	}
	return out
}

func (s *stubData) Tickers() []string { return nil }

type stubForecaster struct {
	forecast models.Forecast
	err      error
}

func (s *stubForecaster) PredictNextDay(_ context.Context, _ *models.ModelContext, _ domrepo.MarketData, _ string, _ int) (models.Forecast, error) {
	if s.err != nil {
		return models.Forecast{}, s.err
	}
	return s.forecast, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordServed(string)                 {}
func (noopMetrics) RecordCacheHit()                     {}
func (noopMetrics) RecordCacheMiss()                    {}
func (noopMetrics) RecordError(string)                  {}
func (noopMetrics) RecordPredictedPrice(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)        {}

func newTestHandler(t *testing.T, modelCtx *models.ModelContext, fc *stubForecaster) *PredictionHandler {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	data := &stubData{bars: map[string]models.Bar{
		"INFY": {
			Ticker: "INFY",
			Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Close:  1500.0,
		},
	}}
	svc := usecase.NewPredictionService(cache.New(nil), modelCtx, data, fc, nil, noopMetrics{}, l, 10)
	return NewPredictionHandler(l, svc, config.DefaultTickers)
}

func doRequest(h *PredictionHandler, path string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPredictionEndpointSuccess(t *testing.T) {
	fc := &stubForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	h := newTestHandler(t, &models.ModelContext{}, fc)

	rec := doRequest(h, "/api/prediction/INFY")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ticker"] != "INFY" || body["status"] != "success" {
		t.Fatalf("unexpected body %v", body)
	}
	if body["latest_date"] != "2024-01-05" || body["predicted_date"] != "2024-01-08" {
		t.Fatalf("unexpected dates %v", body)
	}
	if body["predicted_price"].(float64) != 1530.0 {
		t.Fatalf("unexpected predicted price %v", body["predicted_price"])
	}
}

func TestPredictionEndpointRepeatsIdenticalPayload(t *testing.T) {
	fc := &stubForecaster{forecast: models.Forecast{Normalized: 0.53, Denormalized: 1530.0}}
	h := newTestHandler(t, &models.ModelContext{}, fc)

	first := doRequest(h, "/api/prediction/INFY")
	second := doRequest(h, "/api/prediction/INFY")
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cache hit must serve identical payload:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestPredictionEndpointUnavailable(t *testing.T) {
	h := newTestHandler(t, nil, &stubForecaster{})

	rec := doRequest(h, "/api/prediction/INFY")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "error" || body.Error != "model or data not loaded properly" {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestPredictionEndpointForecastFailure(t *testing.T) {
	fc := &stubForecaster{err: errors.New("unknown ticker XYZ")}
	h := newTestHandler(t, &models.ModelContext{}, fc)

	rec := doRequest(h, "/api/prediction/XYZ")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "error" || body.Error == "" {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestStocksEndpointServesFullUniverse(t *testing.T) {
	// Stocks must work even when the model never loaded.
	h := newTestHandler(t, nil, &stubForecaster{})

	rec := doRequest(h, "/api/stocks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var tickers []string
	if err := json.Unmarshal(rec.Body.Bytes(), &tickers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tickers) != len(config.DefaultTickers) {
		t.Fatalf("expected %d tickers, got %d", len(config.DefaultTickers), len(tickers))
	}
	if tickers[0] != "ADANIENT" || tickers[len(tickers)-1] != "WIPRO" {
		t.Fatalf("unexpected universe bounds %v", tickers)
	}
}

func TestHealthEndpointReportsDegraded(t *testing.T) {
	h := newTestHandler(t, nil, &stubForecaster{})

	rec := doRequest(h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "degraded" {
		t.Fatalf("unexpected health %v", body)
	}
}
