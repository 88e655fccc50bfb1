package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// nodesEnvelope is the JSON export shape for a full node table.
type nodesEnvelope struct {
	RunID       string        `json:"runId"`
	GeneratedAt string        `json:"generatedAt"`
	Count       int           `json:"count"`
	Nodes       []events.Node `json:"nodes"`
}

// NodesJSON renders a node table as a JSON envelope with its run id and
// node count.
func NodesJSON(table *events.Table, generatedAt string) ([]byte, error) {
	env := nodesEnvelope{
		RunID:       table.RunID,
		GeneratedAt: generatedAt,
		Count:       len(table.Nodes),
		Nodes:       table.Nodes,
	}
	if env.Nodes == nil {
		env.Nodes = []events.Node{}
	}
	return json.Marshal(env)
}

// SummaryJSON renders a variant summary with its nodes.
func SummaryJSON(res *events.VariantResult) ([]byte, error) {
	if res.Nodes == nil {
		res.Nodes = []events.Node{}
	}
	return json.Marshal(res)
}

// ValidationJSON renders a timetable validation report.
func ValidationJSON(rep *events.ValidationReport) ([]byte, error) {
	if rep.Details == nil {
		rep.Details = []events.Issue{}
	}
	return json.Marshal(rep)
}

// BuildJSON serializes a SIRI response to JSON.
func BuildJSON(res *SiriResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}
