package busevents

import (
	"bytes"
	"strconv"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
	"github.com/theoremus-urban-solutions/bus-to-events/formatter"
)

// ResponseCache memoizes rendered export payloads. Every entry derives
// from one dataset snapshot; the server swaps the whole cache when the
// dataset changes, so entries never expire individually.
type ResponseCache struct {
	gen *Generator

	mu    sync.Mutex
	memo  map[string][]byte
	table *events.Table
}

func NewResponseCache(gen *Generator) *ResponseCache {
	return &ResponseCache{gen: gen, memo: map[string][]byte{}}
}

func (rc *ResponseCache) memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// exportTable runs the full projection once and reuses the table for
// every rendered format. Callers hold rc.mu.
func (rc *ResponseCache) exportTable() (*events.Table, error) {
	if rc.table != nil {
		return rc.table, nil
	}
	table, err := rc.gen.ExportNodes()
	if err != nil {
		return nil, err
	}
	rc.table = table
	return table, nil
}

func (rc *ResponseCache) cached(key string, build func() ([]byte, error)) ([]byte, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if buf, ok := rc.memo[key]; ok {
		return buf, nil
	}
	buf, err := build()
	if err != nil {
		return nil, err
	}
	rc.memo[key] = buf
	return buf, nil
}

func (rc *ResponseCache) GetNodesCSV() ([]byte, error) {
	return rc.cached(rc.memoKey("nodes", "csv"), func() ([]byte, error) {
		table, err := rc.exportTable()
		if err != nil {
			return nil, err
		}
		return formatter.NodesCSV(table.Nodes)
	})
}

func (rc *ResponseCache) GetNodesJSON() ([]byte, error) {
	return rc.cached(rc.memoKey("nodes", "json"), func() ([]byte, error) {
		table, err := rc.exportTable()
		if err != nil {
			return nil, err
		}
		return formatter.NodesJSON(table, iso8601Now())
	})
}

func (rc *ResponseCache) GetSummaryJSON(routeKey string, routeVarID int, preview bool) ([]byte, error) {
	key := rc.memoKey("summary", routeKey, strconv.Itoa(routeVarID), strconv.FormatBool(preview))
	return rc.cached(key, func() ([]byte, error) {
		res, err := rc.gen.BuildVariantResult(routeKey, routeVarID, preview)
		if err != nil {
			return nil, err
		}
		return formatter.SummaryJSON(res)
	})
}

func (rc *ResponseCache) GetValidationJSON() ([]byte, error) {
	return rc.cached(rc.memoKey("validation", "json"), func() ([]byte, error) {
		return formatter.ValidationJSON(rc.gen.ValidateTimes())
	})
}

// GetEstimatedTimetable renders the full export as a SIRI ET delivery,
// format "json" or "xml".
func (rc *ResponseCache) GetEstimatedTimetable(format string) ([]byte, error) {
	return rc.cached(rc.memoKey("et", format), func() ([]byte, error) {
		table, err := rc.exportTable()
		if err != nil {
			return nil, err
		}
		res := formatter.EstimatedTimetableResponse(table, rc.gen.Cfg.Export.Codespace, rc.gen.ServiceDate(), time.Now())
		if format == "xml" {
			return formatter.BuildXML(res), nil
		}
		return formatter.BuildJSON(res), nil
	})
}

func (rc *ResponseCache) GetTripUpdatesPB() ([]byte, error) {
	return rc.cached(rc.memoKey("tripupdates", "pb"), func() ([]byte, error) {
		table, err := rc.exportTable()
		if err != nil {
			return nil, err
		}
		return formatter.TripUpdatesPB(table, rc.gen.ServiceDate(), time.Now())
	})
}
