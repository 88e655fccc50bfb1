package busevents

import (
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// RouteRef identifies the route context trips are projected under.
type RouteRef struct {
	RouteID    int
	RouteNo    string
	RouteVarID int
}

// ProjectionOptions tunes per-trip projection. A speed bound of zero or
// less disables that check.
type ProjectionOptions struct {
	DwellSeconds int
	MinSpeedMS   float64
	MaxSpeedMS   float64
}

// NodeSequence hands out unique node ids across a projection run.
type NodeSequence struct {
	next int64
}

func NewNodeSequence() *NodeSequence { return &NodeSequence{next: 1} }

func (s *NodeSequence) Next() int64 {
	id := s.next
	s.next++
	return id
}

// TripProjection is the outcome of projecting one scheduled trip.
type TripProjection struct {
	Nodes         []events.Node
	SpeedMS       float64
	TravelSeconds int
}

// ProjectTrip turns one scheduled trip into its timed stop events.
//
// The trip's whole span, minus a fixed dwell at each intermediate stop,
// is driven at one constant speed. The clock accumulates as a float and
// is rounded only when an event is emitted, so rounding never drifts the
// later stops. Trips whose times cannot be parsed, whose schedule leaves
// no travel time, or whose implied speed is implausible are rejected.
func ProjectTrip(ref RouteRef, stops []dataset.Stop, table *DistanceTable, trip dataset.Trip, opts ProjectionOptions, seq *NodeSequence) (*TripProjection, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("trip %d: %d stops", trip.TripID, len(stops))
	}
	if len(table.Segments) != len(stops)-1 {
		return nil, fmt.Errorf("trip %d: %d segments for %d stops", trip.TripID, len(table.Segments), len(stops))
	}

	start, err := ParseClock(trip.StartTime.Raw)
	if err != nil {
		return nil, fmt.Errorf("trip %d start: %w", trip.TripID, err)
	}
	end, err := ParseClock(trip.EndTime.Raw)
	if err != nil {
		return nil, fmt.Errorf("trip %d end: %w", trip.TripID, err)
	}
	if end <= start {
		return nil, fmt.Errorf("trip %d: end %s not after start %s", trip.TripID, trip.EndTime.Raw, trip.StartTime.Raw)
	}
	if table.TotalMeters <= 0 {
		return nil, fmt.Errorf("trip %d: no driven distance", trip.TripID)
	}

	window := end - start - (len(stops)-1)*opts.DwellSeconds
	if window <= 0 {
		return nil, fmt.Errorf("trip %d: dwell swallows the %ds span %s-%s", trip.TripID, end-start, trip.StartTime.Raw, trip.EndTime.Raw)
	}
	speed := table.TotalMeters / float64(window)
	if opts.MinSpeedMS > 0 && speed < opts.MinSpeedMS {
		return nil, fmt.Errorf("trip %d: average speed %.2f m/s below %.2f", trip.TripID, speed, opts.MinSpeedMS)
	}
	if opts.MaxSpeedMS > 0 && speed > opts.MaxSpeedMS {
		return nil, fmt.Errorf("trip %d: average speed %.2f m/s above %.2f", trip.TripID, speed, opts.MaxSpeedMS)
	}

	proj := &TripProjection{SpeedMS: speed, TravelSeconds: window}

	if table.Loop {
		// A loop serves its terminus twice; interior timing is not
		// derivable from a closed ring, so only the endpoints are
		// emitted.
		proj.Nodes = []events.Node{
			newNode(seq, ref, trip, stops[0], start, events.Departure),
			newNode(seq, ref, trip, stops[len(stops)-1], end, events.Arrival),
		}
		return proj, nil
	}

	nodes := make([]events.Node, 0, 2*len(stops)-2)
	clock := float64(start)
	nodes = append(nodes, newNode(seq, ref, trip, stops[0], start, events.Departure))
	for i := 1; i < len(stops); i++ {
		clock += table.Segments[i-1].Meters / speed
		nodes = append(nodes, newNode(seq, ref, trip, stops[i], int(math.Round(clock)), events.Arrival))
		if i < len(stops)-1 {
			clock += float64(opts.DwellSeconds)
			nodes = append(nodes, newNode(seq, ref, trip, stops[i], int(math.Round(clock)), events.Departure))
		}
	}
	proj.Nodes = nodes
	return proj, nil
}

func newNode(seq *NodeSequence, ref RouteRef, trip dataset.Trip, stop dataset.Stop, ts int, kind string) events.Node {
	return events.Node{
		NodeID:     seq.Next(),
		RouteID:    ref.RouteID,
		RouteNo:    ref.RouteNo,
		RouteVarID: ref.RouteVarID,
		TripID:     trip.TripID,
		StopID:     stop.StopID,
		Timestamp:  ts,
		Event:      kind,
		Time:       FormatClock(ts),
		StopName:   stop.Name,
	}
}
