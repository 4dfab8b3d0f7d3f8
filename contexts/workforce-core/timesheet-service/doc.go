// Package timesheetservice owns the timesheet ledger and pay computation for
// the workforce core: submission with per-day hour validation, rate pinning at
// submission time, and the org-scoped read paths over stored timesheets.
//
// Layering follows the module convention: domain holds entities and the pure
// pay calculator, application holds use cases wired through ports, adapters
// provide memory and postgres repositories plus blob storage and transport.
// Other slices reach this one only through ports consumed by the bootstrap
// glue, never by importing internals directly.
package timesheetservice
