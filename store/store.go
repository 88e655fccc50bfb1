package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// schemaSQL is the single source of truth for the sink schema,
// embedded at compile time from schema.sql.
//
//go:embed schema.sql
var schemaSQL string

// Driver identifies which database/sql driver a DB was opened with.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// DB wraps a database connection for one of the supported sinks.
type DB struct {
	conn   *sql.DB
	driver Driver
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// EnsureSchema creates the sink tables if they don't exist. The schema
// file is split into single statements so it runs on drivers that
// reject multi-statement Exec.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for Postgres. SQLite takes the
// query as written.
func (db *DB) rebind(q string) string {
	if db.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// WriteTable persists one export run and all of its nodes in a single
// transaction. datasetPath records which dataset produced the run.
func (db *DB) WriteTable(ctx context.Context, table *events.Table, datasetPath string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	runInsert := db.rebind(`INSERT INTO export_runs
		(run_id, created_at, dataset_path, routes_processed, trips_projected, trips_skipped, node_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, runInsert,
		table.RunID, time.Now().UTC(), datasetPath,
		table.RoutesProcessed, table.TripsProjected, table.TripsSkipped, len(table.Nodes),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", table.RunID, err)
	}

	nodeInsert, err := tx.PrepareContext(ctx, db.rebind(`INSERT INTO event_nodes
		(run_id, node_id, route_id, route_no, route_var_id, trip_id, stop_id, ts, event, clock, stop_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare node insert: %w", err)
	}
	defer nodeInsert.Close()

	for _, n := range table.Nodes {
		if _, err := nodeInsert.ExecContext(ctx,
			table.RunID, n.NodeID, n.RouteID, n.RouteNo, n.RouteVarID,
			n.TripID, n.StopID, n.Timestamp, n.Event, n.Time, n.StopName,
		); err != nil {
			return fmt.Errorf("insert node %d: %w", n.NodeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", table.RunID, err)
	}
	return nil
}

// NodeCount returns how many nodes a run persisted.
func (db *DB) NodeCount(ctx context.Context, runID string) (int, error) {
	var n int
	q := db.rebind(`SELECT COUNT(*) FROM event_nodes WHERE run_id = ?`)
	if err := db.conn.QueryRowContext(ctx, q, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count nodes for run %s: %w", runID, err)
	}
	return n, nil
}
