package busevents

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidateTimes(t *testing.T) {
	gen := NewGenerator(mustIndex(t, validationFixtureJSON), testConfig())
	report := gen.ValidateTimes()

	if report.Summary.TotalTrips != 6 {
		t.Errorf("TotalTrips = %d, want 6", report.Summary.TotalTrips)
	}
	// Trips 2, 3, 4 and 5 are broken. Trip 4 is broken twice but counts
	// once; trip 6 has an out-of-range minute, which the shape check does
	// not cover.
	if report.Summary.InvalidTrips != 4 {
		t.Errorf("InvalidTrips = %d, want 4", report.Summary.InvalidTrips)
	}
	if report.Summary.ErrorRate != 66.67 {
		t.Errorf("ErrorRate = %.2f, want 66.67", report.Summary.ErrorRate)
	}

	wantTypes := map[string]int{
		IssueStartMissing:   1,
		IssueStartNotString: 1,
		IssueStartFormat:    1,
		IssueEndFormat:      1,
		IssueOrder:          1,
	}
	if len(report.IssueTypes) != len(wantTypes) {
		t.Errorf("got %d issue categories, want %d: %v", len(report.IssueTypes), len(wantTypes), report.IssueTypes)
	}
	for cat, want := range wantTypes {
		if got := report.IssueTypes[cat]; got != want {
			t.Errorf("IssueTypes[%q] = %d, want %d", cat, got, want)
		}
	}

	if len(report.Details) != 5 {
		t.Fatalf("got %d detail rows, want 5", len(report.Details))
	}
	byTrip := map[int][]string{}
	for _, d := range report.Details {
		byTrip[d.TripID] = append(byTrip[d.TripID], d.Category)
		if d.RouteID != 5 || d.RouteNo != "5" || d.TimeTableID != 510 {
			t.Errorf("detail row lost its context: %+v", d)
		}
	}
	if cats := byTrip[4]; len(cats) != 2 {
		t.Errorf("trip 4 has %d detail rows, want 2 (broken on both sides): %v", len(cats), cats)
	}
	if cats := byTrip[6]; len(cats) != 0 {
		t.Errorf("trip 6 flagged %v; range errors belong to projection, not the sweep", cats)
	}
	t.Logf("✓ 4 of 6 trips invalid across %d categories", len(report.IssueTypes))
}

func TestValidateTimesRecordsRawValues(t *testing.T) {
	gen := NewGenerator(mustIndex(t, validationFixtureJSON), testConfig())
	report := gen.ValidateTimes()

	for _, d := range report.Details {
		if d.TripID == 3 && d.Category == IssueStartNotString {
			// The numeric literal survives verbatim for the report.
			if d.StartTime != "615" {
				t.Errorf("trip 3 StartTime raw = %q, want \"615\"", d.StartTime)
			}
			return
		}
	}
	t.Error("no detail row for trip 3's numeric StartTime")
}

func TestValidateTimesCleanDataset(t *testing.T) {
	gen := NewGenerator(mustIndex(t, exportFixtureJSON), testConfig())
	report := gen.ValidateTimes()

	// The export fixture's only defect is trip 1002's reversed times.
	if report.Summary.TotalTrips != 3 {
		t.Errorf("TotalTrips = %d, want 3", report.Summary.TotalTrips)
	}
	if report.Summary.InvalidTrips != 1 {
		t.Errorf("InvalidTrips = %d, want 1", report.Summary.InvalidTrips)
	}
	if got := report.IssueTypes[IssueOrder]; got != 1 {
		t.Errorf("IssueTypes[%q] = %d, want 1", IssueOrder, got)
	}
	if report.Summary.ErrorRate != 33.33 {
		t.Errorf("ErrorRate = %.2f, want 33.33", report.Summary.ErrorRate)
	}
}

func TestValidateTimesEmptyDataset(t *testing.T) {
	gen := NewGenerator(mustIndex(t, `{}`), testConfig())
	report := gen.ValidateTimes()

	if report.Summary.TotalTrips != 0 || report.Summary.InvalidTrips != 0 || report.Summary.ErrorRate != 0 {
		t.Errorf("empty dataset produced %+v", report.Summary)
	}
	if len(report.IssueTypes) != 0 || len(report.Details) != 0 {
		t.Errorf("empty dataset produced issues: %v", report.IssueTypes)
	}
}

func TestValidateTimesDetailCap(t *testing.T) {
	// 250 broken trips: the histogram counts all of them, the detail list
	// stops at the cap.
	var trips strings.Builder
	for i := 0; i < 250; i++ {
		if i > 0 {
			trips.WriteString(",")
		}
		fmt.Fprintf(&trips, `{"TripId":%d,"StartTime":null,"EndTime":"7:30"}`, i+1)
	}
	raw := fmt.Sprintf(`{
	  "9": {
	    "getvarsbyroute": [{"RouteVarId": 91, "RouteVarName": "X"}],
	    "gettimetablebyroute": [{"TimeTableId": 910, "RouteVarId": 91}],
	    "gettripsbytimetable": {"910": [%s]}
	  }
	}`, trips.String())

	gen := NewGenerator(mustIndex(t, raw), testConfig())
	report := gen.ValidateTimes()

	if report.IssueTypes[IssueStartMissing] != 250 {
		t.Errorf("histogram count = %d, want 250", report.IssueTypes[IssueStartMissing])
	}
	if len(report.Details) != maxIssueDetails {
		t.Errorf("detail rows = %d, want cap %d", len(report.Details), maxIssueDetails)
	}
	if report.Summary.InvalidTrips != 250 {
		t.Errorf("InvalidTrips = %d, want 250", report.Summary.InvalidTrips)
	}
	t.Logf("✓ details capped at %d, histogram keeps the full count", maxIssueDetails)
}

func TestValidateTimesIgnoresRouteLimit(t *testing.T) {
	// Both fixture routes carry trips; a limit of 1 must not hide the
	// second one from the sweep.
	cfg := testConfig()
	cfg.Projection.RouteLimit = 1
	gen := NewGenerator(mustIndex(t, exportFixtureJSON), cfg)

	report := gen.ValidateTimes()
	if report.Summary.TotalTrips != 3 {
		t.Errorf("TotalTrips = %d, want 3; the sweep must cover the whole dataset", report.Summary.TotalTrips)
	}
}
