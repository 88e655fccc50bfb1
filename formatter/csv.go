package formatter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// nodeCSVHeader is the canonical column order of the node table export.
var nodeCSVHeader = []string{
	"NodeId", "RouteId", "RouteNo", "RouteVarId", "TripId",
	"StopId", "Timestamp", "Event", "Time", "StopName", "Attributes",
}

// NodesCSV renders event nodes as the canonical CSV table, header first,
// one row per node, RFC 4180 quoting.
func NodesCSV(nodes []events.Node) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(nodeCSVHeader); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		row := []string{
			strconv.FormatInt(n.NodeID, 10),
			strconv.Itoa(n.RouteID),
			n.RouteNo,
			strconv.Itoa(n.RouteVarID),
			strconv.Itoa(n.TripID),
			strconv.Itoa(n.StopID),
			strconv.Itoa(n.Timestamp),
			n.Event,
			n.Time,
			n.StopName,
			n.AttributesJSON(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
