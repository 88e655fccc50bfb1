// Package publish streams exported event nodes to NATS, one message
// per projected trip. Subjects are events.<routeNo>.<tripId> with
// tokens sanitized for NATS subject rules.
package publish
