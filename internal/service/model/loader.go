package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
)

// ArtifactFile is the msgpack artifact name inside the saved model directory.
const ArtifactFile = "model.bin"

// artifact is the on-disk layout of the exported model: layer weights plus
// the inference data (ticker index map, graph topology, per-ticker scalers).
type artifact struct {
	SequenceLength int                   `msgpack:"sequence_length"`
	HiddenSize     int                   `msgpack:"hidden_size"`
	WTemporal      [][]float64           `msgpack:"w_temporal"`
	BTemporal      []float64             `msgpack:"b_temporal"`
	WGraph         [][]float64           `msgpack:"w_graph"`
	WOut           []float64             `msgpack:"w_out"`
	BOut           float64               `msgpack:"b_out"`
	TickerToIdx    map[string]int        `msgpack:"ticker_to_idx"`
	EdgeIndex      [][2]int              `msgpack:"edge_index"`
	EdgeWeight     []float64             `msgpack:"edge_weight"`
	Scalers        map[string][2]float64 `msgpack:"scalers"` // [min, max]
}

// Load reads the model artifact from dir once at startup. The returned context
// is read-only for the process lifetime.
func Load(dir string) (*models.ModelContext, error) {
	path := filepath.Join(dir, ArtifactFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a artifact
	if err := msgpack.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	scalers := make(map[string]*models.Scaler, len(a.Scalers))
	for ticker, bounds := range a.Scalers {
		scalers[ticker] = &models.Scaler{Min: bounds[0], Max: bounds[1]}
	}

	return &models.ModelContext{
		Model: &models.GraphModel{
			SequenceLength: a.SequenceLength,
			HiddenSize:     a.HiddenSize,
			WTemporal:      a.WTemporal,
			BTemporal:      a.BTemporal,
			WGraph:         a.WGraph,
			WOut:           a.WOut,
			BOut:           a.BOut,
		},
		TickerToIdx: a.TickerToIdx,
		EdgeIndex:   a.EdgeIndex,
		EdgeWeight:  a.EdgeWeight,
		Scalers:     scalers,
	}, nil
}

func (a *artifact) validate() error {
	if a.SequenceLength <= 0 {
		return fmt.Errorf("sequence_length must be positive")
	}
	if a.HiddenSize <= 0 {
		return fmt.Errorf("hidden_size must be positive")
	}
	if len(a.TickerToIdx) == 0 {
		return fmt.Errorf("ticker_to_idx is empty")
	}
	if len(a.WTemporal) != a.HiddenSize {
		return fmt.Errorf("w_temporal rows: got %d, want %d", len(a.WTemporal), a.HiddenSize)
	}
	for i, row := range a.WTemporal {
		if len(row) != a.SequenceLength {
			return fmt.Errorf("w_temporal row %d: got %d cols, want %d", i, len(row), a.SequenceLength)
		}
	}
	if len(a.BTemporal) != a.HiddenSize {
		return fmt.Errorf("b_temporal: got %d, want %d", len(a.BTemporal), a.HiddenSize)
	}
	if len(a.WGraph) != a.HiddenSize {
		return fmt.Errorf("w_graph rows: got %d, want %d", len(a.WGraph), a.HiddenSize)
	}
	for i, row := range a.WGraph {
		if len(row) != a.HiddenSize {
			return fmt.Errorf("w_graph row %d: got %d cols, want %d", i, len(row), a.HiddenSize)
		}
	}
	if len(a.WOut) != a.HiddenSize {
		return fmt.Errorf("w_out: got %d, want %d", len(a.WOut), a.HiddenSize)
	}
	if len(a.EdgeWeight) != len(a.EdgeIndex) {
		return fmt.Errorf("edge_weight: got %d, want %d edges", len(a.EdgeWeight), len(a.EdgeIndex))
	}
	n := len(a.TickerToIdx)
	for _, idx := range a.TickerToIdx {
		if idx < 0 || idx >= n {
			return fmt.Errorf("ticker index %d out of range [0, %d)", idx, n)
		}
	}
	for i, e := range a.EdgeIndex {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return fmt.Errorf("edge %d endpoints out of range [0, %d)", i, n)
		}
	}
	return nil
}
