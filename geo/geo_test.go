package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters_KnownPairs(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		wantMeters float64
		tolMeters  float64
	}{
		{
			name: "same point",
			lat1: 10.776, lng1: 106.700,
			lat2: 10.776, lng2: 106.700,
			wantMeters: 0,
			tolMeters:  0.001,
		},
		{
			name: "one degree of latitude",
			lat1: 10.0, lng1: 106.0,
			lat2: 11.0, lng2: 106.0,
			wantMeters: 111194.9,
			tolMeters:  10,
		},
		{
			name: "short hop in Ho Chi Minh City",
			lat1: 10.76800, lng1: 106.69500,
			lat2: 10.77000, lng2: 106.69800,
			wantMeters: 396,
			tolMeters:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMeters) > tt.tolMeters {
				t.Errorf("DistanceMeters() = %.3f, want %.3f ± %.3f", got, tt.wantMeters, tt.tolMeters)
			}
		})
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{10.762, 106.660, 10.776, 106.700},
		{21.028, 105.854, 10.776, 106.700},
		{0, 0, 0.001, 0.001},
	}
	for _, p := range pairs {
		ab := DistanceMeters(p[0], p[1], p[2], p[3])
		ba := DistanceMeters(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %.9f vs %.9f", ab, ba)
		}
	}
}

func TestNearestVertex(t *testing.T) {
	lats := []float64{10.0, 10.1, 10.2, 10.3}
	lngs := []float64{106.0, 106.1, 106.2, 106.3}

	tests := []struct {
		name     string
		lat, lng float64
		wantIdx  int
	}{
		{name: "exactly on first vertex", lat: 10.0, lng: 106.0, wantIdx: 0},
		{name: "exactly on last vertex", lat: 10.3, lng: 106.3, wantIdx: 3},
		{name: "closest to second vertex", lat: 10.11, lng: 106.09, wantIdx: 1},
		{name: "far north still clamps to last", lat: 50.0, lng: 106.3, wantIdx: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, dist := NearestVertex(tt.lat, tt.lng, lats, lngs)
			if idx != tt.wantIdx {
				t.Errorf("NearestVertex() index = %d, want %d", idx, tt.wantIdx)
			}
			if dist < 0 {
				t.Errorf("NearestVertex() distance = %f, want >= 0", dist)
			}
		})
	}
}

func TestNearestVertex_TieKeepsLowestIndex(t *testing.T) {
	// Duplicated vertex: both candidates are equidistant, the scan must
	// keep the first one.
	lats := []float64{10.5, 10.5, 10.6}
	lngs := []float64{106.5, 106.5, 106.6}

	idx, _ := NearestVertex(10.5, 106.5, lats, lngs)
	if idx != 0 {
		t.Errorf("tie should resolve to lowest index, got %d", idx)
	}
}

func TestNearestVertex_EmptyPolyline(t *testing.T) {
	idx, dist := NearestVertex(10, 106, nil, nil)
	if idx != -1 || dist != 0 {
		t.Errorf("empty polyline should return (-1, 0), got (%d, %f)", idx, dist)
	}
}

func TestSpanMeters_SumInvariant(t *testing.T) {
	lats := []float64{10.00, 10.02, 10.05, 10.09, 10.10}
	lngs := []float64{106.00, 106.01, 106.03, 106.04, 106.08}

	// Walking a span vertex by vertex must equal the sum of its parts.
	whole := SpanMeters(lats, lngs, 0, 4)
	parts := SpanMeters(lats, lngs, 0, 2) + SpanMeters(lats, lngs, 2, 4)
	if math.Abs(whole-parts) > 1e-9 {
		t.Errorf("span sum invariant violated: whole=%.9f parts=%.9f", whole, parts)
	}

	if got := PathLengthMeters(lats, lngs); math.Abs(got-whole) > 1e-9 {
		t.Errorf("PathLengthMeters() = %.9f, want %.9f", got, whole)
	}
}

func TestSpanMeters_OrderIndependent(t *testing.T) {
	lats := []float64{10.0, 10.1, 10.2}
	lngs := []float64{106.0, 106.1, 106.2}

	fwd := SpanMeters(lats, lngs, 0, 2)
	rev := SpanMeters(lats, lngs, 2, 0)
	if fwd != rev {
		t.Errorf("SpanMeters order should not matter: %.9f vs %.9f", fwd, rev)
	}
}

func TestSpanMeters_DegenerateSpans(t *testing.T) {
	lats := []float64{10.0, 10.1}
	lngs := []float64{106.0, 106.1}

	if got := SpanMeters(lats, lngs, 1, 1); got != 0 {
		t.Errorf("zero-width span = %f, want 0", got)
	}
	if got := PathLengthMeters(lats[:1], lngs[:1]); got != 0 {
		t.Errorf("single-vertex path length = %f, want 0", got)
	}
}
