package dataset

import (
	"sort"
	"strconv"
)

// Index stores the decoded dataset with deterministic route ordering.
// Fields are exported so the gob snapshot round-trip keeps everything.
type Index struct {
	Keys    []string               // route keys, sorted numerically where possible
	Records map[string]RouteRecord // route key -> captures
}

func newIndex(records map[string]RouteRecord) *Index {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sortRouteKeys(keys)
	return &Index{Keys: keys, Records: records}
}

// sortRouteKeys orders numeric keys by value and everything else
// lexicographically, numerics first.
func sortRouteKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// GetAllRouteKeys returns the route keys in index order. Callers must not
// mutate the returned slice.
func (ix *Index) GetAllRouteKeys() []string { return ix.Keys }

// RouteCount returns the number of routes in the dataset.
func (ix *Index) RouteCount() int { return len(ix.Keys) }

// HasRoute reports whether the dataset carries the given route key.
func (ix *Index) HasRoute(key string) bool {
	_, ok := ix.Records[key]
	return ok
}

// GetRouteMeta returns route metadata with fallbacks applied: when the
// metadata capture is missing, RouteID is the numeric value of the key and
// RouteNo is the key itself.
func (ix *Index) GetRouteMeta(key string) RouteMeta {
	rec, ok := ix.Records[key]
	if ok && rec.Route != nil {
		meta := *rec.Route
		if meta.RouteNo == "" {
			meta.RouteNo = key
		}
		return meta
	}
	id, _ := strconv.Atoi(key)
	return RouteMeta{RouteID: id, RouteNo: key}
}

// GetVariants returns the variants of a route in capture order.
func (ix *Index) GetVariants(key string) []Variant {
	return ix.Records[key].Variants
}

// GetStops returns the ordered stops of a route variant, or nil when the
// variant has no stop capture.
func (ix *Index) GetStops(key string, routeVarID int) []Stop {
	rec, ok := ix.Records[key]
	if !ok {
		return nil
	}
	return rec.Stops[strconv.Itoa(routeVarID)]
}

// GetPath returns the polyline of a route variant. The second return is
// false when the variant has no path capture.
func (ix *Index) GetPath(key string, routeVarID int) (Path, bool) {
	rec, ok := ix.Records[key]
	if !ok {
		return Path{}, false
	}
	p, ok := rec.Paths[strconv.Itoa(routeVarID)]
	return p, ok
}

// GetTimetables returns the timetables bound to one variant, in capture
// order.
func (ix *Index) GetTimetables(key string, routeVarID int) []Timetable {
	rec, ok := ix.Records[key]
	if !ok {
		return nil
	}
	var out []Timetable
	for _, tt := range rec.Timetables {
		if tt.RouteVarID == routeVarID {
			out = append(out, tt)
		}
	}
	return out
}

// GetAllTimetables returns every timetable of a route regardless of
// variant.
func (ix *Index) GetAllTimetables(key string) []Timetable {
	return ix.Records[key].Timetables
}

// GetTrips returns the trips of one timetable in capture order.
func (ix *Index) GetTrips(key string, timeTableID int) []Trip {
	rec, ok := ix.Records[key]
	if !ok {
		return nil
	}
	return rec.Trips[strconv.Itoa(timeTableID)]
}

// TripCount returns the total number of trip records in the dataset.
func (ix *Index) TripCount() int {
	total := 0
	for _, rec := range ix.Records {
		for _, trips := range rec.Trips {
			total += len(trips)
		}
	}
	return total
}
