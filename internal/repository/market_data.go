package repository

import (
	"sort"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
)

// MemoryMarketData holds the full historical dataset in memory, per ticker in
// ascending date order. Built once at startup by the CSV or ClickHouse loader
// and read-only afterwards.
type MemoryMarketData struct {
	bars map[string][]models.Bar
}

func newMemoryMarketData() *MemoryMarketData {
	return &MemoryMarketData{bars: make(map[string][]models.Bar)}
}

func (m *MemoryMarketData) add(b models.Bar) {
	m.bars[b.Ticker] = append(m.bars[b.Ticker], b)
}

// finalize sorts every ticker's bars by date. Must be called once after
// loading, before the store is shared.
func (m *MemoryMarketData) finalize() {
	for _, bars := range m.bars {
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	}
}

// LatestBar returns the most recent bar for a ticker, by date.
func (m *MemoryMarketData) LatestBar(ticker string) (models.Bar, bool) {
	bars := m.bars[ticker]
	if len(bars) == 0 {
		return models.Bar{}, false
	}
	return bars[len(bars)-1], true
}

// CloseHistory returns up to n most recent closes in ascending date order.
func (m *MemoryMarketData) CloseHistory(ticker string, n int) []float64 {
	bars := m.bars[ticker]
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Tickers lists every ticker present in the dataset.
func (m *MemoryMarketData) Tickers() []string {
	out := make([]string, 0, len(m.bars))
	for t := range m.bars {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Rows reports the total number of bars loaded.
func (m *MemoryMarketData) Rows() int {
	var n int
	for _, bars := range m.bars {
		n += len(bars)
	}
	return n
}
