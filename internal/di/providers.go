package di

import (
	"context"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	domrepo "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
	domsvc "github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/service"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/handler/api"
	internalrepo "github.com/Shresth-k/THGNN-model-for-stock-market/internal/repository"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/cache"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/forecast"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/service/model"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/usecase"
	pkgch "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/clickhouse"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/config"
	xhttp "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/http"
	pkgkafka "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/kafka"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/metrics"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideModelContext loads the model artifact once at startup. A load
// failure is logged and leaves the handle nil: the prediction endpoint is
// degraded for the process lifetime, everything else keeps serving.
func ProvideModelContext(cfg *config.Config, l *applogger.Logger) *models.ModelContext {
	mctx, err := model.Load(cfg.Model.Dir)
	if err != nil {
		l.Error("model load failed", applogger.String("dir", cfg.Model.Dir), applogger.Error(err))
		return nil
	}
	l.Info("model loaded",
		applogger.String("dir", cfg.Model.Dir),
		applogger.Int("tickers", len(mctx.TickerToIdx)),
		applogger.Int("edges", len(mctx.EdgeIndex)),
	)
	return mctx
}

// ProvideMarketData loads the historical dataset once at startup, from CSV or
// ClickHouse depending on the configured backend. Best-effort like the model
// load; a nil result degrades only the prediction endpoint.
func ProvideMarketData(cfg *config.Config, l *applogger.Logger) domrepo.MarketData {
	switch cfg.Data.Backend {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			l.Error("clickhouse connect failed", applogger.Error(err))
			return nil
		}
		// The dataset is read fully into memory; the connection is not
		// needed afterwards.
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		store, err := internalrepo.LoadClickHouseMarketData(ctx, client, cfg.Data.Table, l)
		if err != nil {
			l.Error("stock data load failed", applogger.Error(err))
			return nil
		}
		return store
	default:
		store, err := internalrepo.LoadCSVMarketData(cfg.Data.CSVPath, l)
		if err != nil {
			l.Error("stock data load failed", applogger.String("path", cfg.Data.CSVPath), applogger.Error(err))
			return nil
		}
		return store
	}
}

// ProvidePublisher creates the Kafka prediction event publisher when enabled.
// Publishing is best-effort end to end, so a broker that cannot be reached at
// startup only disables events.
func ProvidePublisher(cfg *config.Config, l *applogger.Logger) domrepo.Publisher {
	if !cfg.Kafka.Enabled {
		return nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		l.Error("kafka producer init failed", applogger.Error(err))
		return nil
	}
	l.Info("kafka publisher ready",
		applogger.Strings("brokers", cfg.Kafka.Brokers),
		applogger.String("topic", cfg.Kafka.Topic),
	)
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the daily prediction cache with the wall clock.
func ProvideCache() *cache.PredictionCache {
	return cache.New(time.Now)
}

// ProvideForecaster creates the graph forecaster.
func ProvideForecaster() domsvc.Forecaster {
	return forecast.New()
}

// ProvidePredictionService wires the request orchestration.
func ProvidePredictionService(
	c *cache.PredictionCache,
	mctx *models.ModelContext,
	data domrepo.MarketData,
	forecaster domsvc.Forecaster,
	publisher domrepo.Publisher,
	m domrepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.PredictionService {
	return usecase.NewPredictionService(c, mctx, data, forecaster, publisher, m, l, cfg.Model.SequenceLength)
}

// ProvidePredictionHandler creates the HTTP handler.
func ProvidePredictionHandler(l *applogger.Logger, svc *usecase.PredictionService, cfg *config.Config) xhttp.Handler {
	return api.NewPredictionHandler(l, svc, cfg.Universe.Tickers)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, publisher domrepo.Publisher) *server.App {
	return server.New(cfg, l, h, publisher)
}
