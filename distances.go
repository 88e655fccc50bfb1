package busevents

import (
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
	"github.com/theoremus-urban-solutions/bus-to-events/geo"
)

// loopCoordTolerance is the per-axis slack, in degrees, under which the
// first and last stops of a variant count as the same place.
const loopCoordTolerance = 1e-6

// Segment is the driven distance between two consecutive stops, measured
// along the variant polyline between their nearest vertices.
type Segment struct {
	Meters     float64
	FromVertex int
	ToVertex   int
	Wraparound bool
}

// DistanceTable holds the per-segment driven distances of one variant.
// Segments[i] covers stops[i] to stops[i+1].
type DistanceTable struct {
	Segments    []Segment
	TotalMeters float64
	Loop        bool
}

// IsLoop reports whether a stop sequence closes on itself.
func IsLoop(stops []dataset.Stop) bool {
	if len(stops) < 2 {
		return false
	}
	first, last := stops[0], stops[len(stops)-1]
	return math.Abs(first.Lat-last.Lat) <= loopCoordTolerance &&
		math.Abs(first.Lng-last.Lng) <= loopCoordTolerance
}

// BuildDistanceTable measures every consecutive stop pair of a variant
// along its polyline. Mismatched coordinate arrays are truncated to the
// shorter side, mirroring how the dumps are produced; a polyline with
// fewer than two usable vertices is an error.
func BuildDistanceTable(stops []dataset.Stop, path dataset.Path) (*DistanceTable, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("need at least 2 stops, got %d", len(stops))
	}
	vertices := len(path.Lat)
	if len(path.Lng) < vertices {
		vertices = len(path.Lng)
	}
	if vertices < 2 {
		return nil, fmt.Errorf("polyline has %d usable vertices", vertices)
	}

	loop := IsLoop(stops)
	table := &DistanceTable{Loop: loop}

	if loop && len(stops) == 2 {
		// Out-and-back to the same stop: the single segment is the whole
		// ring.
		seg := Segment{
			Meters:     geo.PathLengthMeters(path.Lat, path.Lng),
			FromVertex: 0,
			ToVertex:   vertices - 1,
			Wraparound: true,
		}
		table.Segments = []Segment{seg}
		table.TotalMeters = seg.Meters
		return table, nil
	}

	for i := 0; i < len(stops)-1; i++ {
		closing := loop && i == len(stops)-2
		seg := measureSegment(stops[i], stops[i+1], path, closing)
		table.Segments = append(table.Segments, seg)
		table.TotalMeters += seg.Meters
	}
	return table, nil
}

// measureSegment projects both stops onto the polyline and walks between
// their vertices. The closing segment of a loop is allowed to wrap past
// the polyline end back to its start when the projection order inverts.
func measureSegment(a, b dataset.Stop, path dataset.Path, closing bool) Segment {
	ia, _ := geo.NearestVertex(a.Lat, a.Lng, path.Lat, path.Lng)
	ib, _ := geo.NearestVertex(b.Lat, b.Lng, path.Lat, path.Lng)
	if closing && ib < ia {
		last := len(path.Lat) - 1
		if len(path.Lng)-1 < last {
			last = len(path.Lng) - 1
		}
		m := geo.SpanMeters(path.Lat, path.Lng, ia, last) + geo.SpanMeters(path.Lat, path.Lng, 0, ib)
		return Segment{Meters: m, FromVertex: ia, ToVertex: ib, Wraparound: true}
	}
	return Segment{Meters: geo.SpanMeters(path.Lat, path.Lng, ia, ib), FromVertex: ia, ToVertex: ib}
}
