package publish

import (
	"testing"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

func TestSplitByTrip(t *testing.T) {
	table := &events.Table{
		RunID: "run-1",
		Nodes: []events.Node{
			{NodeID: 1, RouteID: 10, RouteNo: "10", RouteVarID: 77, TripID: 9001, Event: events.Departure},
			{NodeID: 2, RouteID: 10, RouteNo: "10", RouteVarID: 77, TripID: 9001, Event: events.Arrival},
			{NodeID: 3, RouteID: 10, RouteNo: "10", RouteVarID: 78, TripID: 9002, Event: events.Departure},
			{NodeID: 4, RouteID: 10, RouteNo: "10", RouteVarID: 78, TripID: 9002, Event: events.Arrival},
			// Same trip number on a different variant stays separate.
			{NodeID: 5, RouteID: 11, RouteNo: "D4", RouteVarID: 90, TripID: 9001, Event: events.Departure},
		},
	}

	msgs := SplitByTrip(table)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 trip messages, got %d", len(msgs))
	}

	if msgs[0].TripID != 9001 || msgs[0].RouteVarID != 77 {
		t.Errorf("first message: trip %d variant %d", msgs[0].TripID, msgs[0].RouteVarID)
	}
	if len(msgs[0].Nodes) != 2 {
		t.Errorf("first message node count: %d", len(msgs[0].Nodes))
	}
	if msgs[0].RunID != "run-1" {
		t.Errorf("run id not carried: %q", msgs[0].RunID)
	}
	if msgs[2].RouteNo != "D4" || len(msgs[2].Nodes) != 1 {
		t.Errorf("variant-qualified split failed: %+v", msgs[2])
	}

	t.Logf("✓ %d trip messages in table order", len(msgs))
}

func TestSubjectToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "9001", "9001"},
		{"spaces", "route 10", "route_10"},
		{"wildcards", "a.>*", "a___"},
		{"slash and tab", "a/b\tc", "a_b_c"},
		{"empty", "  ", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := subjectToken(tt.in); got != tt.want {
				t.Errorf("subjectToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
