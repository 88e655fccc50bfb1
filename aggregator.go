package busevents

import (
	"fmt"
	"log"
	"math"

	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// variantRun is the outcome of projecting the timetable trips of one
// route variant.
type variantRun struct {
	ref        RouteRef
	variant    dataset.Variant
	stops      []dataset.Stop
	table      *DistanceTable
	nodes      []events.Node
	valid      int
	skipped    int
	speedSum   float64
	windowSum  int
	dwellTotal int
}

// runVariant measures a variant's geometry and projects its trips. In
// preview mode only the first trip of the first timetable is projected,
// which is enough for display without walking a whole service day.
func (g *Generator) runVariant(routeKey string, v dataset.Variant, seq *NodeSequence, preview bool) (*variantRun, error) {
	meta := g.Data.GetRouteMeta(routeKey)
	stops := g.Data.GetStops(routeKey, v.RouteVarID)
	if len(stops) < 2 {
		return nil, fmt.Errorf("variant %d: %d stops", v.RouteVarID, len(stops))
	}
	path, ok := g.Data.GetPath(routeKey, v.RouteVarID)
	if !ok {
		return nil, fmt.Errorf("variant %d: no path capture", v.RouteVarID)
	}
	table, err := BuildDistanceTable(stops, path)
	if err != nil {
		return nil, fmt.Errorf("variant %d: %w", v.RouteVarID, err)
	}
	if table.TotalMeters <= 0 {
		return nil, fmt.Errorf("variant %d: zero driven distance", v.RouteVarID)
	}

	opts := g.projectionOptions(meta)
	ref := RouteRef{RouteID: meta.RouteID, RouteNo: meta.RouteNo, RouteVarID: v.RouteVarID}
	run := &variantRun{
		ref:        ref,
		variant:    v,
		stops:      stops,
		table:      table,
		dwellTotal: (len(stops) - 1) * opts.DwellSeconds,
	}

	timetables := g.Data.GetTimetables(routeKey, v.RouteVarID)
	if preview && len(timetables) > 1 {
		timetables = timetables[:1]
	}
	for _, tt := range timetables {
		trips := g.Data.GetTrips(routeKey, tt.TimeTableID)
		if preview && len(trips) > 1 {
			trips = trips[:1]
		}
		for _, trip := range trips {
			proj, err := ProjectTrip(ref, stops, table, trip, opts, seq)
			if err != nil {
				run.skipped++
				log.Printf("route %s variant %d: skipping trip: %v", meta.RouteNo, v.RouteVarID, err)
				continue
			}
			run.valid++
			run.nodes = append(run.nodes, proj.Nodes...)
			run.speedSum += proj.SpeedMS
			run.windowSum += proj.TravelSeconds
		}
	}
	return run, nil
}

func (run *variantRun) summary() events.VariantSummary {
	s := events.VariantSummary{
		RouteID:      run.ref.RouteID,
		RouteNo:      run.ref.RouteNo,
		RouteVarID:   run.ref.RouteVarID,
		VariantName:  run.variant.RouteVarName,
		StopCount:    len(run.stops),
		PathMeters:   math.Round(run.table.TotalMeters),
		Loop:         run.table.Loop,
		DwellMinutes: roundTo(float64(run.dwellTotal)/60, 1),
		ValidTrips:   run.valid,
		SkippedTrips: run.skipped,
	}
	if run.valid > 0 {
		s.AvgSpeedKMH = roundTo(run.speedSum/float64(run.valid)*3.6, 1)
		s.TravelMinutes = roundTo(float64(run.windowSum)/float64(run.valid)/60, 1)
	}
	return s
}

// BuildVariantResult projects one variant and returns its summary with
// the produced nodes. A routeVarID of zero or less selects the route's
// first variant. Node ids are local to the call, starting at 1.
func (g *Generator) BuildVariantResult(routeKey string, routeVarID int, preview bool) (*events.VariantResult, error) {
	variants := g.Data.GetVariants(routeKey)
	if len(variants) == 0 {
		return nil, fmt.Errorf("route %s has no variants", routeKey)
	}
	var v *dataset.Variant
	if routeVarID <= 0 {
		v = &variants[0]
	} else {
		for i := range variants {
			if variants[i].RouteVarID == routeVarID {
				v = &variants[i]
				break
			}
		}
	}
	if v == nil {
		return nil, fmt.Errorf("route %s has no variant %d", routeKey, routeVarID)
	}

	run, err := g.runVariant(routeKey, *v, NewNodeSequence(), preview)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", routeKey, err)
	}
	return &events.VariantResult{Summary: run.summary(), Nodes: run.nodes}, nil
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
