// Package store persists exported event node tables.
//
// Two database/sql drivers are supported behind the same writer: an
// embedded SQLite file (modernc.org/sqlite, WAL mode) and a Postgres
// server (jackc/pgx stdlib driver). Each export run is written in one
// transaction: a row in export_runs plus its nodes in event_nodes.
package store
