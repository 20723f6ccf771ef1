package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	pkgch "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/clickhouse"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
)

// LoadClickHouseMarketData pulls the full historical dataset out of ClickHouse
// into memory at startup. The table needs ticker, date and close columns.
// After the load the connection is no longer used; forecasting reads only the
// in-memory snapshot.
func LoadClickHouseMarketData(ctx context.Context, ch *pkgch.Client, table string, l *applogger.Logger) (*MemoryMarketData, error) {
	start := time.Now()
	db := ch.DB()

	q := fmt.Sprintf("SELECT ticker, date, close FROM %s ORDER BY ticker, date", table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		if l != nil {
			l.Error("clickhouse stock data query error",
				applogger.String("table", table),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query stock data: %w", err)
	}
	defer rows.Close()

	store := newMemoryMarketData()
	for rows.Next() {
		var (
			ticker     string
			date       time.Time
			closePrice float64
		)
		if err := rows.Scan(&ticker, &date, &closePrice); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		store.add(models.Bar{Ticker: ticker, Date: date, Close: closePrice})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	store.finalize()

	if l != nil {
		l.Info("stock data loaded",
			applogger.String("source", "clickhouse:"+table),
			applogger.Int("tickers", len(store.Tickers())),
			applogger.Int("rows", store.Rows()),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return store, nil
}
