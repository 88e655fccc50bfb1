package busevents

import (
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// Issue category constants. The literal strings are part of the report
// schema, so downstream dashboards key on them.
const (
	IssueStartMissing   = "StartTime missing"
	IssueEndMissing     = "EndTime missing"
	IssueStartNotString = "StartTime not a string"
	IssueEndNotString   = "EndTime not a string"
	IssueStartFormat    = "StartTime bad format"
	IssueEndFormat      = "EndTime bad format"
	IssueOrder          = "EndTime <= StartTime"
)

// maxIssueDetails caps the per-trip detail list; the histogram always
// covers everything.
const maxIssueDetails = 200

// issueInfo holds aggregated information about one issue category.
type issueInfo struct {
	count    int
	examples []string
}

// issueCollector gathers timetable issues during a sweep and can log a
// consolidated summary per category.
type issueCollector struct {
	issues  map[string]*issueInfo
	details []events.Issue
}

func newIssueCollector() *issueCollector {
	return &issueCollector{issues: make(map[string]*issueInfo)}
}

// add records one issue occurrence, keeping up to 3 example trip ids per
// category and up to maxIssueDetails full detail rows overall.
func (c *issueCollector) add(category string, meta dataset.RouteMeta, tt dataset.Timetable, trip dataset.Trip) {
	if c.issues[category] == nil {
		c.issues[category] = &issueInfo{examples: make([]string, 0, 3)}
	}
	info := c.issues[category]
	info.count++
	if len(info.examples) < 3 {
		info.examples = append(info.examples, strconv.Itoa(trip.TripID))
	}
	if len(c.details) < maxIssueDetails {
		c.details = append(c.details, events.Issue{
			RouteID:     meta.RouteID,
			RouteNo:     meta.RouteNo,
			TimeTableID: tt.TimeTableID,
			TripID:      trip.TripID,
			Category:    category,
			StartTime:   trip.StartTime.Raw,
			EndTime:     trip.EndTime.Raw,
		})
	}
}

func (c *issueCollector) histogram() map[string]int {
	out := make(map[string]int, len(c.issues))
	for cat, info := range c.issues {
		out[cat] = info.count
	}
	return out
}

// logAll outputs the collected issues in consolidated form, one line per
// category, sorted so runs diff cleanly.
func (c *issueCollector) logAll() {
	cats := make([]string, 0, len(c.issues))
	for cat := range c.issues {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		info := c.issues[cat]
		log.Printf("timetable sweep found %d trips with %q. Example trips: %s",
			info.count, cat, strings.Join(info.examples, ", "))
	}
}

// checkClock classifies one raw time value. It returns the categories to
// record and whether the value is worth attempting to parse.
func checkClock(c dataset.ClockText, missing, notString, badFormat string) (cats []string, parseable bool) {
	switch {
	case !c.Present:
		return []string{missing}, false
	case !c.IsString:
		return []string{notString}, false
	case !clockPattern.MatchString(c.Raw):
		return []string{badFormat}, false
	}
	return nil, true
}

// ValidateTimes sweeps every timetable trip of the dataset and reports
// missing, malformed and misordered start/end times. A trip with at least
// one issue counts once toward invalidTrips regardless of how many of its
// fields are broken. The sweep always covers the whole dataset; the
// projection route limit does not apply here.
func (g *Generator) ValidateTimes() *events.ValidationReport {
	collector := newIssueCollector()
	total := 0
	invalid := 0

	for _, key := range g.Data.GetAllRouteKeys() {
		meta := g.Data.GetRouteMeta(key)
		for _, tt := range g.Data.GetAllTimetables(key) {
			for _, trip := range g.Data.GetTrips(key, tt.TimeTableID) {
				total++
				issues := 0

				startCats, startParseable := checkClock(trip.StartTime, IssueStartMissing, IssueStartNotString, IssueStartFormat)
				endCats, endParseable := checkClock(trip.EndTime, IssueEndMissing, IssueEndNotString, IssueEndFormat)
				for _, cat := range startCats {
					collector.add(cat, meta, tt, trip)
					issues++
				}
				for _, cat := range endCats {
					collector.add(cat, meta, tt, trip)
					issues++
				}

				if startParseable && endParseable {
					start, err1 := ParseClock(trip.StartTime.Raw)
					end, err2 := ParseClock(trip.EndTime.Raw)
					if err1 == nil && err2 == nil && end <= start {
						collector.add(IssueOrder, meta, tt, trip)
						issues++
					}
				}

				if issues > 0 {
					invalid++
				}
			}
		}
	}

	rate := 0.0
	if total > 0 {
		rate = roundTo(float64(invalid)/float64(total)*100, 2)
	}
	if invalid == 0 {
		log.Printf("timetable sweep: %d trips, no issues", total)
	} else {
		log.Printf("timetable sweep: %d of %d trips have issues (%.2f%%)", invalid, total, rate)
		collector.logAll()
	}

	if g.Metrics != nil {
		g.Metrics.InvalidTrips.Set(float64(invalid))
	}
	return &events.ValidationReport{
		Summary: events.ValidationSummary{
			TotalTrips:   total,
			InvalidTrips: invalid,
			ErrorRate:    rate,
		},
		IssueTypes: collector.histogram(),
		Details:    collector.details,
	}
}
