// Package notifications provides the real-time fan-out of order lifecycle
// events to customer sessions, staff members, and restaurant dashboards.
//
// Channels are ephemeral: a subscription exists only while someone listens,
// delivery is at-most-once, and nothing is replayed. A customer who
// reconnects re-reads order state from the API; missed events are not an
// error. Publishing never fails an operation: the order state change is the
// source of truth, notifications are best-effort.
//
// Two broker implementations exist: an in-process one for single-node
// deployments and tests, and a Redis Pub/Sub one for multi-node deployments
// where the subscriber may be connected to a different node than the
// publisher. A noop broker disables fan-out entirely.
package notifications
