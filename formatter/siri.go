package formatter

import (
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/transit-types/siri"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

const iso8601Extended = "2006-01-02T15:04:05.000000000-07:00"

// SiriResponse is the service delivery envelope for the estimated
// timetable export.
type SiriResponse struct {
	ResponseTimestamp          string                            `json:"ResponseTimestamp"`
	ProducerRef                string                            `json:"ProducerRef,omitempty"`
	EstimatedTimetableDelivery []siri.EstimatedTimetableDelivery `json:"EstimatedTimetableDelivery"`
}

// tripKey separates trips that share an id across variants.
type tripKey struct {
	routeVarID int
	tripID     int
}

// groupByTrip splits a node table into per-trip groups, keeping both the
// table's trip order and each trip's emission order.
func groupByTrip(nodes []events.Node) [][]events.Node {
	var order []tripKey
	byTrip := map[tripKey][]events.Node{}
	for _, n := range nodes {
		k := tripKey{routeVarID: n.RouteVarID, tripID: n.TripID}
		if _, seen := byTrip[k]; !seen {
			order = append(order, k)
		}
		byTrip[k] = append(byTrip[k], n)
	}
	out := make([][]events.Node, 0, len(order))
	for _, k := range order {
		out = append(out, byTrip[k])
	}
	return out
}

// stopVisit is one serviced stop of a trip with its event times in
// seconds since midnight; -1 marks an absent side.
type stopVisit struct {
	stopID    int
	stopName  string
	arrival   int
	departure int
}

// stopVisits folds a trip's event nodes back into per-stop visits. An
// arrival always opens a new visit, so a loop trip's terminus appears
// twice, as it is served twice.
func stopVisits(nodes []events.Node) []stopVisit {
	var visits []stopVisit
	for _, n := range nodes {
		if len(visits) == 0 || n.Event == events.Arrival {
			visits = append(visits, stopVisit{stopID: n.StopID, stopName: n.StopName, arrival: -1, departure: -1})
		}
		v := &visits[len(visits)-1]
		if n.Event == events.Arrival {
			v.arrival = n.Timestamp
		} else {
			v.departure = n.Timestamp
		}
	}
	return visits
}

// EstimatedTimetableResponse renders a node table as a SIRI ET service
// delivery. serviceDate anchors the wall-clock event times to calendar
// instants; generatedAt stamps the delivery itself.
func EstimatedTimetableResponse(table *events.Table, codespace string, serviceDate, generatedAt time.Time) *SiriResponse {
	recordedAt := generatedAt.Format(iso8601Extended)

	groups := groupByTrip(table.Nodes)
	journeys := make([]siri.EstimatedVehicleJourney, 0, len(groups))
	for _, grp := range groups {
		journeys = append(journeys, buildJourney(grp, codespace, serviceDate, recordedAt))
	}

	frame := siri.EstimatedJourneyVersionFrame{
		RecordedAtTime:          recordedAt,
		EstimatedVehicleJourney: journeys,
	}
	delivery := siri.EstimatedTimetableDelivery{
		Version:                      "2.0",
		ResponseTimestamp:            recordedAt,
		EstimatedJourneyVersionFrame: []siri.EstimatedJourneyVersionFrame{frame},
	}
	return &SiriResponse{
		ResponseTimestamp:          generatedAt.UTC().Format(time.RFC3339),
		ProducerRef:                codespace,
		EstimatedTimetableDelivery: []siri.EstimatedTimetableDelivery{delivery},
	}
}

func buildJourney(nodes []events.Node, codespace string, serviceDate time.Time, recordedAt string) siri.EstimatedVehicleJourney {
	first := nodes[0]
	last := nodes[len(nodes)-1]

	visits := stopVisits(nodes)
	calls := make([]siri.EstimatedCall, 0, len(visits))
	for i, v := range visits {
		call := siri.EstimatedCall{
			StopPointRef:  codespace + ":Quay:" + strconv.Itoa(v.stopID),
			Order:         i + 1,
			StopPointName: v.stopName,
		}
		if v.arrival >= 0 {
			when := aimedTime(serviceDate, v.arrival)
			call.AimedArrivalTime = when
			call.ExpectedArrivalTime = when
			call.ArrivalStatus = "onTime"
		}
		if v.departure >= 0 {
			when := aimedTime(serviceDate, v.departure)
			call.AimedDepartureTime = when
			call.ExpectedDepartureTime = when
			call.DepartureStatus = "onTime"
		}
		calls = append(calls, call)
	}

	return siri.EstimatedVehicleJourney{
		RecordedAtTime: recordedAt,
		LineRef:        codespace + ":Line:" + strconv.Itoa(first.RouteID),
		DirectionRef:   strconv.Itoa(first.RouteVarID),
		FramedVehicleJourneyRef: siri.FramedVehicleJourneyRef{
			DataFrameRef:           serviceDate.Format("2006-01-02"),
			DatedVehicleJourneyRef: codespace + ":ServiceJourney:" + strconv.Itoa(first.TripID),
		},
		VehicleMode:            "bus",
		OriginName:             first.StopName,
		DestinationName:        last.StopName,
		Monitored:              false,
		DataSource:             codespace,
		OperatorRef:            codespace,
		EstimatedCalls:         calls,
		IsCompleteStopSequence: true,
	}
}

// aimedTime anchors seconds-since-midnight to the service date. Times
// past 24h roll into the following day, which is what a same-day anchor
// plus duration arithmetic yields for free.
func aimedTime(serviceDate time.Time, secs int) string {
	midnight := time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, serviceDate.Location())
	return midnight.Add(time.Duration(secs) * time.Second).Format(iso8601Extended)
}
