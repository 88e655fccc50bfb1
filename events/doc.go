// Package events defines the derived output model: timetable event nodes,
// per-variant summaries and the timetable validation report.
//
// These types are shared by the projection core, the formatters and the
// storage/publishing sinks, and carry the exact field names of the export
// schema in their JSON tags.
package events
