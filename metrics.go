package busevents

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the process metrics on a private registry so tests
// can build as many instances as they like.
type Collector struct {
	reg *prometheus.Registry

	DatasetRoutes prometheus.Gauge
	DatasetTrips  prometheus.Gauge
	InvalidTrips  prometheus.Gauge

	RoutesProcessed prometheus.Counter
	TripsProjected  prometheus.Counter
	TripsSkipped    prometheus.Counter
	NodesGenerated  prometheus.Counter

	ExportsServed *prometheus.CounterVec // format label: csv|json|siri|sirixml|gtfsrt

	ExportDuration prometheus.Histogram

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		DatasetRoutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busevents_dataset_routes",
			Help: "Number of routes in the loaded dataset.",
		}),
		DatasetTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busevents_dataset_trips",
			Help: "Number of timetable trips in the loaded dataset.",
		}),
		InvalidTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busevents_validation_invalid_trips",
			Help: "Trips flagged by the last timetable validation sweep.",
		}),
		RoutesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_routes_processed_total",
			Help: "Total routes walked by export runs.",
		}),
		TripsProjected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_trips_projected_total",
			Help: "Total trips successfully projected to event nodes.",
		}),
		TripsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_trips_skipped_total",
			Help: "Total trips rejected during projection.",
		}),
		NodesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_nodes_generated_total",
			Help: "Total event nodes generated.",
		}),
		ExportsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busevents_exports_served_total",
			Help: "Export responses served, by format.",
		}, []string{"format"}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busevents_export_duration_seconds",
			Help:    "Duration of full dataset export runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15),
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busevents_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busevents_nats_connected",
			Help: "1 while the NATS connection is up.",
		}),
	}

	reg.MustRegister(
		c.DatasetRoutes, c.DatasetTrips, c.InvalidTrips,
		c.RoutesProcessed, c.TripsProjected, c.TripsSkipped, c.NodesGenerated,
		c.ExportsServed, c.ExportDuration,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)
	return c
}

// SetDatasetStats refreshes the dataset gauges after a (re)load.
func (c *Collector) SetDatasetStats(routes, trips int) {
	c.DatasetRoutes.Set(float64(routes))
	c.DatasetTrips.Set(float64(trips))
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// PublishedInc implements publish.PublisherMetrics.
func (c *Collector) PublishedInc() { c.NATSPublished.Inc() }

// PublishErrInc implements publish.PublisherMetrics.
func (c *Collector) PublishErrInc() { c.NATSPublishErrs.Inc() }

// SetConnected implements publish.PublisherMetrics.
func (c *Collector) SetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}
