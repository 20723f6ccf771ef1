package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	applogger "github.com/Shresth-k/THGNN-model-for-stock-market/pkg/logger"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/util"
)

// LoadCSVMarketData reads the historical dataset from a CSV file with at least
// ticker, date and close columns (matched by header name, extra columns
// ignored). Rows with unparseable dates or prices are rejected, the whole load
// fails: a partial dataset would silently skew forecasts.
func LoadCSVMarketData(path string, l *applogger.Logger) (*MemoryMarketData, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stock data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	tickerCol, dateCol, closeCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "ticker":
			tickerCol = i
		case "date":
			dateCol = i
		case "close":
			closeCol = i
		}
	}
	if tickerCol < 0 || dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("csv header missing ticker/date/close: %v", header)
	}

	store := newMemoryMarketData()
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		date, ok := util.ParseDate(rec[dateCol])
		if !ok {
			return nil, fmt.Errorf("csv line %d: bad date %q", line, rec[dateCol])
		}
		closePrice, err := strconv.ParseFloat(rec[closeCol], 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad close %q", line, rec[closeCol])
		}

		store.add(models.Bar{Ticker: rec[tickerCol], Date: date, Close: closePrice})
	}
	store.finalize()

	if l != nil {
		l.Info("stock data loaded",
			applogger.String("source", path),
			applogger.Int("tickers", len(store.Tickers())),
			applogger.Int("rows", store.Rows()),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return store, nil
}
