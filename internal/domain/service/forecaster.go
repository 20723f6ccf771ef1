package service

import (
	"context"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
)

// Forecaster produces a next-day price forecast for one ticker. Deterministic
// given identical inputs; fails on unknown tickers, short history, or a
// missing scaler.
type Forecaster interface {
	PredictNextDay(ctx context.Context, m *models.ModelContext, data repository.MarketData, ticker string, window int) (models.Forecast, error)
}
