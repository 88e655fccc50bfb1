package events

import (
	"encoding/json"
	"strconv"
)

// Event kinds carried by Node.Event.
const (
	Arrival   = "ARRIVAL"
	Departure = "DEPARTURE"
)

// Node is one timed stop event of one projected trip. Timestamp is seconds
// since local service-day midnight; Time is the same instant rendered as
// HH:MM:SS wall clock.
type Node struct {
	NodeID     int64  `json:"NodeId"`
	RouteID    int    `json:"RouteId"`
	RouteNo    string `json:"RouteNo"`
	RouteVarID int    `json:"RouteVarId"`
	TripID     int    `json:"TripId"`
	StopID     int    `json:"StopId"`
	Timestamp  int    `json:"Timestamp"`
	Event      string `json:"Event"`
	Time       string `json:"Time"`
	StopName   string `json:"StopName"`
}

// AttributesJSON renders the node's compact attribute tuple, a JSON array
// of [RouteId, StopId, Timestamp, Event].
func (n Node) AttributesJSON() string {
	b, err := json.Marshal([]any{n.RouteID, n.StopID, n.Timestamp, n.Event})
	if err != nil {
		// The tuple only holds ints and a string constant, so this cannot
		// fail; keep a parseable fallback anyway.
		return "[" + strconv.Itoa(n.RouteID) + "," + strconv.Itoa(n.StopID) + "," + strconv.Itoa(n.Timestamp) + ",\"" + n.Event + "\"]"
	}
	return string(b)
}

// Table is the result of a bulk projection run over a dataset.
type Table struct {
	RunID           string `json:"runId"`
	Nodes           []Node `json:"nodes"`
	RoutesProcessed int    `json:"routesProcessed"`
	TripsProjected  int    `json:"tripsProjected"`
	TripsSkipped    int    `json:"tripsSkipped"`
}

// VariantSummary aggregates one route variant's geometry and timetable
// into display statistics. Speeds are in km/h, durations in minutes.
type VariantSummary struct {
	RouteID       int     `json:"RouteId"`
	RouteNo       string  `json:"RouteNo"`
	RouteVarID    int     `json:"RouteVarId"`
	VariantName   string  `json:"VariantName"`
	StopCount     int     `json:"StopCount"`
	PathMeters    float64 `json:"PathMeters"`
	Loop          bool    `json:"Loop"`
	AvgSpeedKMH   float64 `json:"AvgSpeedKMH"`
	TravelMinutes float64 `json:"TravelMinutes"`
	DwellMinutes  float64 `json:"DwellMinutes"`
	ValidTrips    int     `json:"ValidTrips"`
	SkippedTrips  int     `json:"SkippedTrips"`
}

// VariantResult couples a summary with the nodes that produced it.
type VariantResult struct {
	Summary VariantSummary `json:"summary"`
	Nodes   []Node         `json:"nodes"`
}

// Issue is one defect found on one timetable trip.
type Issue struct {
	RouteID     int    `json:"RouteId"`
	RouteNo     string `json:"RouteNo"`
	TimeTableID int    `json:"TimeTableId"`
	TripID      int    `json:"TripId"`
	Category    string `json:"Category"`
	StartTime   string `json:"StartTime"`
	EndTime     string `json:"EndTime"`
}

// ValidationSummary carries the headline counters of a validation sweep.
type ValidationSummary struct {
	TotalTrips   int     `json:"totalTrips"`
	InvalidTrips int     `json:"invalidTrips"`
	ErrorRate    float64 `json:"errorRate"`
}

// ValidationReport is the full result of a timetable validation sweep:
// headline counters, a histogram of issue categories and a capped list of
// per-trip details.
type ValidationReport struct {
	Summary    ValidationSummary `json:"summary"`
	IssueTypes map[string]int    `json:"issueTypes"`
	Details    []Issue           `json:"details"`
}
