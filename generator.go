package busevents

import (
	"time"

	"github.com/theoremus-urban-solutions/bus-to-events/config"
	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
)

// Generator derives event nodes, variant summaries and validation reports
// from a loaded dataset.
type Generator struct {
	Data    *dataset.Index
	Cfg     config.AppConfig
	Metrics *Collector
}

func NewGenerator(data *dataset.Index, cfg config.AppConfig) *Generator {
	return &Generator{Data: data, Cfg: cfg}
}

// WithMetrics attaches a collector. A nil collector leaves all counters
// disabled; every use site is nil-safe.
func (g *Generator) WithMetrics(m *Collector) *Generator {
	g.Metrics = m
	return g
}

// dwellFor resolves the per-stop dwell for a route: the bus-type override
// when one is configured, the global default otherwise.
func (g *Generator) dwellFor(meta dataset.RouteMeta) int {
	if d, ok := g.Cfg.Projection.DwellByBusType[meta.Type]; ok && d >= 0 {
		return d
	}
	return g.Cfg.Projection.DwellSeconds
}

func (g *Generator) projectionOptions(meta dataset.RouteMeta) ProjectionOptions {
	opts := ProjectionOptions{DwellSeconds: g.dwellFor(meta)}
	if v := g.Cfg.Projection.MinAvgSpeedMS; v != nil {
		opts.MinSpeedMS = *v
	}
	if v := g.Cfg.Projection.MaxAvgSpeedMS; v != nil {
		opts.MaxSpeedMS = *v
	}
	return opts
}

// ServiceDate resolves the configured export service date; today when
// unset or malformed.
func (g *Generator) ServiceDate() time.Time {
	if s := g.Cfg.Export.ServiceDate; s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			return d
		}
	}
	return time.Now()
}

// routeKeys returns the dataset's route keys with the configured limit
// applied.
func (g *Generator) routeKeys() []string {
	keys := g.Data.GetAllRouteKeys()
	if limit := g.Cfg.Projection.RouteLimit; limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}
	return keys
}
