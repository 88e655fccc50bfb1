package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	lib "github.com/theoremus-urban-solutions/bus-to-events"
	"github.com/theoremus-urban-solutions/bus-to-events/config"
	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
	"github.com/theoremus-urban-solutions/bus-to-events/events"
	"github.com/theoremus-urban-solutions/bus-to-events/formatter"
	"github.com/theoremus-urban-solutions/bus-to-events/publish"
	"github.com/theoremus-urban-solutions/bus-to-events/store"
)

func main() {
	mode := flag.String("mode", "export", "export|summary|validate|serve")
	configPath := flag.String("config", "", "config file path (default config.yml / config.yaml)")
	datasetPath := flag.String("dataset", "", "dataset JSON path or URL (overrides config)")
	out := flag.String("out", "", "export output path, - for stdout (overrides config)")
	format := flag.String("format", "", "csv|json|siri|sirixml|gtfsrt (overrides config)")
	route := flag.String("route", "", "route key or number for summary mode")
	variant := flag.Int("variant", 0, "route variant id for summary mode (0 = first)")
	preview := flag.Bool("preview", false, "summary preview: first trip of the first timetable only")
	limit := flag.Int("limit", 0, "route limit for export (0 = all)")
	toSQLite := flag.Bool("sqlite", false, "also write the export to the configured SQLite sink")
	toPostgres := flag.Bool("postgres", false, "also write the export to the configured Postgres sink")
	toNATS := flag.Bool("nats", false, "also publish per-trip batches to NATS")
	flag.Parse()

	lib.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		if *configPath != "" {
			panic(err)
		}
		// No config file around: flags and env carry the run.
		cfg = config.Defaults()
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	if *out != "" {
		cfg.Export.Output = *out
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *limit > 0 {
		cfg.Projection.RouteLimit = *limit
	}

	metrics := lib.NewCollector()

	switch *mode {
	case "export":
		runExport(cfg, metrics, *toSQLite, *toPostgres, *toNATS)
	case "summary":
		runSummary(cfg, metrics, *route, *variant, *preview)
	case "validate":
		runValidate(cfg, metrics)
	case "serve":
		runServe(cfg, metrics)
	default:
		panic("unknown mode")
	}
}

// loadIndex loads the dataset, going through the gob snapshot cache
// when one is configured.
func loadIndex(cfg config.AppConfig) *dataset.Index {
	if cfg.Dataset.Path == "" {
		panic("no dataset configured; pass -dataset or set dataset.path")
	}
	if cache := cfg.Dataset.CachePath; cache != "" {
		if idx, err := dataset.DeserializeIndexFromFile(cache); err == nil {
			log.Printf("dataset loaded from cache %s: %d routes", cache, idx.RouteCount())
			return idx
		}
	}
	idx, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		panic(err)
	}
	log.Printf("dataset loaded from %s: %d routes, %d trips", cfg.Dataset.Path, idx.RouteCount(), idx.TripCount())
	if cache := cfg.Dataset.CachePath; cache != "" {
		if err := dataset.SerializeIndexToFile(idx, cache); err != nil {
			log.Printf("dataset cache write failed: %v", err)
		}
	}
	return idx
}

func runExport(cfg config.AppConfig, metrics *lib.Collector, toSQLite, toPostgres, toNATS bool) {
	idx := loadIndex(cfg)
	metrics.SetDatasetStats(idx.RouteCount(), idx.TripCount())
	gen := lib.NewGenerator(idx, cfg).WithMetrics(metrics)

	table, err := gen.ExportNodes()
	if err != nil {
		panic(err)
	}

	now := time.Now()
	var buf []byte
	switch cfg.Export.Format {
	case "csv":
		buf, err = formatter.NodesCSV(table.Nodes)
	case "json":
		buf, err = formatter.NodesJSON(table, now.UTC().Format(time.RFC3339))
	case "siri":
		buf = formatter.BuildJSON(formatter.EstimatedTimetableResponse(table, cfg.Export.Codespace, gen.ServiceDate(), now))
	case "sirixml":
		buf = formatter.BuildXML(formatter.EstimatedTimetableResponse(table, cfg.Export.Codespace, gen.ServiceDate(), now))
	case "gtfsrt":
		buf, err = formatter.TripUpdatesPB(table, gen.ServiceDate(), now)
	default:
		panic("unknown format: " + cfg.Export.Format)
	}
	if err != nil {
		panic(err)
	}

	if cfg.Export.Output == "-" {
		fmt.Println(string(buf))
	} else {
		if err := os.WriteFile(cfg.Export.Output, buf, 0644); err != nil {
			panic(err)
		}
		log.Printf("wrote %d bytes to %s (%s)", len(buf), cfg.Export.Output, cfg.Export.Format)
	}

	ctx := context.Background()
	if toSQLite {
		writeSink(ctx, cfg, table, store.OpenSQLite, cfg.Store.SQLitePath, "sqlite")
	}
	if toPostgres {
		writeSink(ctx, cfg, table, store.OpenPostgres, cfg.Store.PostgresDSN, "postgres")
	}
	if toNATS {
		publishTrips(cfg, metrics, table)
	}
}

func writeSink(ctx context.Context, cfg config.AppConfig, table *events.Table, open func(string) (*store.DB, error), target, name string) {
	if target == "" {
		panic(name + " sink requested but not configured")
	}
	db, err := open(target)
	if err != nil {
		panic(err)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		panic(err)
	}
	if err := db.WriteTable(ctx, table, cfg.Dataset.Path); err != nil {
		panic(err)
	}
	log.Printf("%s sink: run %s persisted (%d nodes)", name, table.RunID, len(table.Nodes))
}

func publishTrips(cfg config.AppConfig, metrics *lib.Collector, table *events.Table) {
	if cfg.Publish.NATSURL == "" {
		panic("nats publish requested but publish.natsUrl is empty")
	}
	pub, err := publish.NewPublisher(cfg.Publish.NATSURL, metrics)
	if err != nil {
		panic(err)
	}
	defer pub.Close()
	n, err := pub.PublishTrips(table)
	if err != nil {
		panic(err)
	}
	log.Printf("nats: published %d trip messages", n)
}

func runSummary(cfg config.AppConfig, metrics *lib.Collector, route string, variant int, preview bool) {
	if route == "" {
		panic("summary mode needs -route")
	}
	idx := loadIndex(cfg)
	gen := lib.NewGenerator(idx, cfg).WithMetrics(metrics)

	routeKey, err := lib.ResolveRouteKey(route, idx)
	if err != nil {
		panic(err)
	}
	res, err := gen.BuildVariantResult(routeKey, variant, preview)
	if err != nil {
		panic(err)
	}
	buf, err := formatter.SummaryJSON(res)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(buf))
}

func runValidate(cfg config.AppConfig, metrics *lib.Collector) {
	idx := loadIndex(cfg)
	gen := lib.NewGenerator(idx, cfg).WithMetrics(metrics)

	buf, err := formatter.ValidationJSON(gen.ValidateTimes())
	if err != nil {
		panic(err)
	}
	fmt.Println(string(buf))
}

func runServe(cfg config.AppConfig, metrics *lib.Collector) {
	idx := loadIndex(cfg)
	srv := lib.NewServer(cfg, idx, metrics)
	srv.StartServer()
	srv.HandleGracefulShutdown()
}
