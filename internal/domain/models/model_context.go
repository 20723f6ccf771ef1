package models

// ModelContext holds the trained model weights plus the auxiliary inference
// data the forecaster needs: ticker index map, graph topology with edge
// weights, and per-ticker normalization scalers. Immutable after load; shared
// read-only by all requests.
type ModelContext struct {
	Model       *GraphModel
	TickerToIdx map[string]int
	EdgeIndex   [][2]int
	EdgeWeight  []float64
	Scalers     map[string]*Scaler
}

// GraphModel is the exported parameter set of the trained temporal graph
// network: a temporal projection over the close-price window, one weighted
// propagation step over the ticker graph, and a linear readout.
type GraphModel struct {
	SequenceLength int
	HiddenSize     int
	WTemporal      [][]float64 // hidden x sequence
	BTemporal      []float64   // hidden
	WGraph         [][]float64 // hidden x hidden
	WOut           []float64   // hidden
	BOut           float64
}

// Scaler holds min/max normalization bounds for one ticker's close prices.
type Scaler struct {
	Min float64
	Max float64
}

// Scale maps a price into the model's internal [0, 1] range.
func (s *Scaler) Scale(v float64) float64 {
	span := s.Max - s.Min
	if span == 0 {
		return 0
	}
	return (v - s.Min) / span
}

// Inverse maps a normalized value back to price units.
func (s *Scaler) Inverse(v float64) float64 {
	return v*(s.Max-s.Min) + s.Min
}
