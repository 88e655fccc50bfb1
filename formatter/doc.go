// Package formatter serializes derived event tables for export.
//
// This package is organized into:
// - csv.go: the canonical node table CSV
// - json.go: JSON envelopes for nodes, summaries and validation reports
// - siri.go: SIRI EstimatedTimetable construction from event nodes
// - xml.go: XML serialization of the SIRI delivery with proper escaping
// - gtfsrt.go: GTFS-RT TripUpdates protobuf feed construction
//
// SIRI XML is written manually for precise control over element order.
package formatter
