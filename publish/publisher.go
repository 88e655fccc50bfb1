package publish

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// PublisherMetrics is what the publisher reports to. The root metrics
// collector implements it; tests pass nil.
type PublisherMetrics interface {
	PublishedInc()
	PublishErrInc()
	SetConnected(connected bool)
}

// TripMessage is one trip's slice of the event network.
type TripMessage struct {
	RunID      string        `json:"runId"`
	RouteID    int           `json:"routeId"`
	RouteNo    string        `json:"routeNo"`
	RouteVarID int           `json:"routeVarId"`
	TripID     int           `json:"tripId"`
	Nodes      []events.Node `json:"nodes"`
}

type Publisher struct {
	nc      *nats.Conn
	metrics PublisherMetrics
}

func NewPublisher(url string, m PublisherMetrics) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("bus-to-events"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.SetConnected(true)
	}
	return &Publisher{nc: nc, metrics: m}, nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// PublishTrips sends one message per trip in the table, preserving the
// table's trip order. The first publish error aborts the stream.
func (p *Publisher) PublishTrips(table *events.Table) (int, error) {
	published := 0
	for _, msg := range SplitByTrip(table) {
		subject := "events." + subjectToken(msg.RouteNo) + "." + subjectToken(strconv.Itoa(msg.TripID))
		b, err := json.Marshal(msg)
		if err != nil {
			return published, err
		}
		if err := p.nc.Publish(subject, b); err != nil {
			if p.metrics != nil {
				p.metrics.PublishErrInc()
			}
			return published, err
		}
		if p.metrics != nil {
			p.metrics.PublishedInc()
		}
		published++
	}
	return published, p.nc.Flush()
}

// SplitByTrip folds a node table into per-trip messages in first
// appearance order.
func SplitByTrip(table *events.Table) []TripMessage {
	type key struct {
		routeVarID int
		tripID     int
	}
	var order []key
	byTrip := map[key]*TripMessage{}
	for _, n := range table.Nodes {
		k := key{routeVarID: n.RouteVarID, tripID: n.TripID}
		msg, seen := byTrip[k]
		if !seen {
			msg = &TripMessage{
				RunID:      table.RunID,
				RouteID:    n.RouteID,
				RouteNo:    n.RouteNo,
				RouteVarID: n.RouteVarID,
				TripID:     n.TripID,
			}
			byTrip[k] = msg
			order = append(order, k)
		}
		msg.Nodes = append(msg.Nodes, n)
	}
	out := make([]TripMessage, 0, len(order))
	for _, k := range order {
		out = append(out, *byTrip[k])
	}
	return out
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
