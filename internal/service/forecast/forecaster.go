package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/repository"
)

var (
	ErrUnknownTicker = errors.New("ticker not in model index")
	ErrShortHistory  = errors.New("insufficient price history")
	ErrNoScaler      = errors.New("no scaler for ticker")
)

// GraphForecaster runs the exported temporal graph network: scaled close
// windows for every ticker, a temporal projection, one weighted propagation
// step over the ticker graph, and a linear readout for the requested ticker.
// Pure computation, deterministic for identical inputs.
type GraphForecaster struct{}

func New() *GraphForecaster { return &GraphForecaster{} }

func (f *GraphForecaster) PredictNextDay(_ context.Context, m *models.ModelContext, data repository.MarketData, ticker string, window int) (models.Forecast, error) {
	g := m.Model
	if window != g.SequenceLength {
		return models.Forecast{}, fmt.Errorf("window %d does not match model sequence length %d", window, g.SequenceLength)
	}

	idx, ok := m.TickerToIdx[ticker]
	if !ok {
		return models.Forecast{}, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}
	scaler := m.Scalers[ticker]
	if scaler == nil {
		return models.Forecast{}, fmt.Errorf("%w: %s", ErrNoScaler, ticker)
	}
	if hist := data.CloseHistory(ticker, window); len(hist) < window {
		return models.Forecast{}, fmt.Errorf("%w: %s has %d of %d observations", ErrShortHistory, ticker, len(hist), window)
	}

	n := len(m.TickerToIdx)

	// Feature matrix: one scaled close window per ticker. Tickers without a
	// full window or a scaler contribute a zero row; only the target ticker
	// is required to have complete inputs.
	x := mat.NewDense(n, window, nil)
	for t, i := range m.TickerToIdx {
		s := m.Scalers[t]
		hist := data.CloseHistory(t, window)
		if s == nil || len(hist) < window {
			continue
		}
		for j, v := range hist {
			x.Set(i, j, s.Scale(v))
		}
	}

	// Temporal projection: H = tanh(X Wt^T + b), n x hidden.
	wt := denseFromRows(g.WTemporal)
	var h mat.Dense
	h.Mul(x, wt.T())
	for i := 0; i < n; i++ {
		for j := 0; j < g.HiddenSize; j++ {
			h.Set(i, j, math.Tanh(h.At(i, j)+g.BTemporal[j]))
		}
	}

	// One propagation step over the weighted ticker graph with self loops,
	// rows normalized so each node averages its neighborhood.
	a := adjacency(n, m.EdgeIndex, m.EdgeWeight)
	var p mat.Dense
	p.Mul(a, &h)

	wg := denseFromRows(g.WGraph)
	var gout mat.Dense
	gout.Mul(&p, wg.T())
	gout.Apply(func(_, _ int, v float64) float64 { return math.Max(v, 0) }, &gout)

	// Linear readout for the target ticker.
	norm := g.BOut
	for j := 0; j < g.HiddenSize; j++ {
		norm += gout.At(idx, j) * g.WOut[j]
	}

	return models.Forecast{
		Normalized:   norm,
		Denormalized: scaler.Inverse(norm),
	}, nil
}

// adjacency builds the row-normalized weighted adjacency matrix with self
// loops. Edge pairs are [src, dst]: dst aggregates from src.
func adjacency(n int, edges [][2]int, weights []float64) *mat.Dense {
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}
	for k, e := range edges {
		src, dst := e[0], e[1]
		a.Set(dst, src, a.At(dst, src)+weights[k])
	}
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += a.At(i, j)
		}
		if sum == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			a.Set(i, j, a.At(i, j)/sum)
		}
	}
	return a
}

func denseFromRows(rows [][]float64) *mat.Dense {
	r := len(rows)
	c := len(rows[0])
	d := mat.NewDense(r, c, nil)
	for i, row := range rows {
		d.SetRow(i, row)
	}
	return d
}
