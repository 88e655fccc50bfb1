package busevents

import (
	"testing"

	"github.com/theoremus-urban-solutions/bus-to-events/config"
	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
)

// The geometry fixtures sit on the equator so hop lengths are exact:
// 0.001 degrees of longitude is 111.19 m there, giving segment sums
// that are easy to verify by hand.
//
// Route "1" runs three stops over a straight 8-hop polyline with the
// middle stop exactly halfway, so both segments measure 444.78 m.
// Route "D4" is a loop: first and last stop coincide. Trip 1002 has its
// times reversed and must be skipped.
const exportFixtureJSON = `{
  "1": {
    "getroutebyid": {"RouteId": 1, "RouteNo": "1", "RouteName": "Ben Thanh - Cho Lon", "Type": ""},
    "getvarsbyroute": [{"RouteVarId": 11, "RouteVarName": "Outbound"}],
    "getstopsbyvar": {
      "11": [
        {"StopId": 101, "Name": "Ben Thanh", "Lat": 0, "Lng": 0},
        {"StopId": 102, "Name": "Le Lai", "Lat": 0, "Lng": 0.004},
        {"StopId": 103, "Name": "Cho Lon", "Lat": 0, "Lng": 0.008}
      ]
    },
    "getpathsbyvar": {
      "11": {
        "lat": [0, 0, 0, 0, 0, 0, 0, 0, 0],
        "lng": [0, 0.001, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007, 0.008]
      }
    },
    "gettimetablebyroute": [{"TimeTableId": 100, "RouteVarId": 11}],
    "gettripsbytimetable": {
      "100": [
        {"TripId": 1001, "StartTime": "7:00", "EndTime": "7:05"},
        {"TripId": 1002, "StartTime": "7:10", "EndTime": "7:05"}
      ]
    }
  },
  "D4": {
    "getvarsbyroute": [{"RouteVarId": 41, "RouteVarName": "Depot loop"}],
    "getstopsbyvar": {
      "41": [
        {"StopId": 201, "Name": "Depot", "Lat": 0, "Lng": 0},
        {"StopId": 202, "Name": "Market", "Lat": 0, "Lng": 0.002},
        {"StopId": 201, "Name": "Depot", "Lat": 0, "Lng": 0}
      ]
    },
    "getpathsbyvar": {
      "41": {
        "lat": [0, 0, 0, 0.001, 0.001, 0.001],
        "lng": [0, 0.001, 0.002, 0.002, 0.001, 0]
      }
    },
    "gettimetablebyroute": [{"TimeTableId": 410, "RouteVarId": 41}],
    "gettripsbytimetable": {
      "410": [
        {"TripId": 4001, "StartTime": "8:00", "EndTime": "8:05"}
      ]
    }
  }
}`

// Route "5" carries one of each timetable defect. Trip 4 is broken on
// both sides and must still count once. Trip 6 passes the shape check
// but not the range check; range errors surface at projection time, not
// in the sweep.
const validationFixtureJSON = `{
  "5": {
    "getroutebyid": {"RouteId": 5, "RouteNo": "5", "RouteName": "Test", "Type": ""},
    "getvarsbyroute": [{"RouteVarId": 51, "RouteVarName": "Out"}],
    "getstopsbyvar": {
      "51": [
        {"StopId": 301, "Name": "A", "Lat": 0, "Lng": 0},
        {"StopId": 302, "Name": "B", "Lat": 0, "Lng": 0.004}
      ]
    },
    "getpathsbyvar": {
      "51": {"lat": [0, 0], "lng": [0, 0.004]}
    },
    "gettimetablebyroute": [{"TimeTableId": 510, "RouteVarId": 51}],
    "gettripsbytimetable": {
      "510": [
        {"TripId": 1, "StartTime": "7:00", "EndTime": "7:30"},
        {"TripId": 2, "StartTime": null, "EndTime": "7:30"},
        {"TripId": 3, "StartTime": 615, "EndTime": "7:30"},
        {"TripId": 4, "StartTime": "7:5", "EndTime": "bad"},
        {"TripId": 5, "StartTime": "8:00", "EndTime": "7:00"},
        {"TripId": 6, "StartTime": "7:00", "EndTime": "7:61"}
      ]
    }
  }
}`

func mustIndex(t *testing.T, raw string) *dataset.Index {
	t.Helper()
	idx, err := dataset.NewIndexFromBytes([]byte(raw))
	if err != nil {
		t.Fatalf("fixture did not parse: %v", err)
	}
	return idx
}

func testConfig() config.AppConfig {
	return config.Defaults()
}
