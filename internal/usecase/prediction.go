package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	domrepo "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
	domsvc "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/service"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/cache"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/util"
)

// ErrUnavailable is returned while the model or the dataset failed to load at
// startup. Permanent for the process lifetime; no reload is attempted.
var ErrUnavailable = errors.New("model or data not loaded properly")

// PredictionService orchestrates one request: cache lookup, availability
// check, forecast computation, response assembly, cache write. Failures stay
// contained to the request that hit them and are never cached.
type PredictionService struct {
	cache      *cache.PredictionCache
	modelCtx   *models.ModelContext
	data       domrepo.MarketData
	forecaster domsvc.Forecaster
	publisher  domrepo.Publisher
	metrics    domrepo.Metrics
	logger     *applogger.Logger
	window     int
}

func NewPredictionService(
	c *cache.PredictionCache,
	modelCtx *models.ModelContext,
	data domrepo.MarketData,
	forecaster domsvc.Forecaster,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	window int,
) *PredictionService {
	return &PredictionService{
		cache:      c,
		modelCtx:   modelCtx,
		data:       data,
		forecaster: forecaster,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		window:     window,
	}
}

// Available reports whether both startup loads succeeded.
func (s *PredictionService) Available() bool {
	return s.modelCtx != nil && s.data != nil
}

// Predict returns the cached entry for the ticker or computes, caches and
// returns a fresh one.
func (s *PredictionService) Predict(ctx context.Context, ticker string) (*models.Prediction, error) {
	entry, ok, gen := s.cache.Lookup(ticker)
	if ok {
		s.metrics.RecordCacheHit()
		s.metrics.RecordServed("hit")
		return entry, nil
	}
	s.metrics.RecordCacheMiss()

	if !s.Available() {
		s.metrics.RecordError("unavailable")
		s.metrics.RecordServed("error")
		return nil, ErrUnavailable
	}

	start := time.Now()
	fcst, err := s.forecaster.PredictNextDay(ctx, s.modelCtx, s.data, ticker, s.window)
	if err != nil {
		s.metrics.RecordError("forecast")
		s.metrics.RecordServed("error")
		return nil, fmt.Errorf("predict %s: %w", ticker, err)
	}

	latest, ok := s.data.LatestBar(ticker)
	if !ok {
		s.metrics.RecordError("no_data")
		s.metrics.RecordServed("error")
		return nil, fmt.Errorf("no market data for %s", ticker)
	}
	if latest.Close == 0 {
		s.metrics.RecordError("bad_price")
		s.metrics.RecordServed("error")
		return nil, fmt.Errorf("invalid latest price for %s", ticker)
	}

	predictedDate := util.NextBusinessDay(latest.Date)
	entry = &models.Prediction{
		Ticker:               ticker,
		LatestDate:           util.FormatDate(latest.Date),
		LatestPrice:          latest.Close,
		PredictedDate:        util.FormatDate(predictedDate),
		PredictedPrice:       fcst.Denormalized,
		NormalizedPrediction: fcst.Normalized,
		PercentChange:        (fcst.Denormalized - latest.Close) / latest.Close * 100,
		Status:               "success",
	}

	s.metrics.RecordLatency("predict", time.Since(start).Seconds())
	s.metrics.RecordPredictedPrice(ticker, fcst.Denormalized)
	s.metrics.RecordServed("computed")

	// A failed computation is never cached; a stale one (the day rolled over
	// mid-compute) is dropped by the generation check.
	stored := s.cache.Put(ticker, entry, gen)
	if !stored {
		s.logger.Warn("cache write dropped, generation rolled over",
			applogger.String("ticker", ticker),
		)
	}

	s.publish(ctx, entry)
	return entry, nil
}

// publish emits the prediction event best-effort: a broker failure must not
// fail the request.
func (s *PredictionService) publish(ctx context.Context, entry *models.Prediction) {
	if s.publisher == nil {
		return
	}
	event := &models.PredictionEvent{
		Ticker:         entry.Ticker,
		LatestDate:     entry.LatestDate,
		LatestPrice:    entry.LatestPrice,
		PredictedDate:  entry.PredictedDate,
		PredictedPrice: entry.PredictedPrice,
		PercentChange:  entry.PercentChange,
		GeneratedAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.RecordError("publish")
		s.logger.Warn("prediction event publish failed",
			applogger.String("ticker", entry.Ticker),
			applogger.Error(err),
		)
	}
}
