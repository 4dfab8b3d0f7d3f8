// Package notificationservice distributes workforce events to connected
// clients. Delivery is transient and best-effort: subscribers receive events
// published while they are connected, in per-organization commit order, and
// nothing is replayed to late joiners.
package notificationservice
