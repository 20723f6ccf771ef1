package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func validArtifact() *artifact {
	return &artifact{
		SequenceLength: 3,
		HiddenSize:     2,
		WTemporal:      [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
		BTemporal:      []float64{0.01, 0.02},
		WGraph:         [][]float64{{1, 0}, {0, 1}},
		WOut:           []float64{0.5, 0.5},
		BOut:           0.1,
		TickerToIdx:    map[string]int{"INFY": 0, "TCS": 1},
		EdgeIndex:      [][2]int{{0, 1}, {1, 0}},
		EdgeWeight:     []float64{0.8, 0.8},
		Scalers:        map[string][2]float64{"INFY": {1000, 2000}, "TCS": {3000, 4000}},
	}
}

func writeArtifact(t *testing.T, a *artifact) string {
	t.Helper()
	dir := t.TempDir()
	b, err := msgpack.Marshal(a)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ArtifactFile), b, 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return dir
}

func TestLoadValidArtifact(t *testing.T) {
	dir := writeArtifact(t, validArtifact())

	ctx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ctx.Model.SequenceLength != 3 || ctx.Model.HiddenSize != 2 {
		t.Fatalf("unexpected model dims %+v", ctx.Model)
	}
	if ctx.TickerToIdx["TCS"] != 1 {
		t.Fatalf("unexpected index map %v", ctx.TickerToIdx)
	}
	s, ok := ctx.Scalers["INFY"]
	if !ok || s.Min != 1000 || s.Max != 2000 {
		t.Fatalf("unexpected scaler %+v", s)
	}
	if got := s.Inverse(s.Scale(1500)); got != 1500 {
		t.Fatalf("scaler roundtrip: got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestLoadRejectsBadDims(t *testing.T) {
	a := validArtifact()
	a.WOut = []float64{0.5} // wrong length
	dir := writeArtifact(t, a)
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected dimension validation error")
	}
}

func TestLoadRejectsEdgeOutOfRange(t *testing.T) {
	a := validArtifact()
	a.EdgeIndex = [][2]int{{0, 5}}
	a.EdgeWeight = []float64{1}
	dir := writeArtifact(t, a)
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected edge range validation error")
	}
}

func TestLoadRejectsCorruptPayload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ArtifactFile), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected decode error")
	}
}
