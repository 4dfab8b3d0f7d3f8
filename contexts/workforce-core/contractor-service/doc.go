// Package contractorservice implements contractor onboarding inside Foreman.
//
// It owns the organization/boss/contractor ledger and the approval state
// machine: a contractor applies as pending, and exactly one boss action moves
// the record to approved or rejected. Both outcomes are terminal; re-applying
// is a new application.
//
// Layering:
// - domain: entities, approval transition rules, errors
// - application: commands/queries using explicit ports
// - ports: stable boundaries for persistence, clock, ids, events
// - adapters: concrete HTTP, memory, postgres, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under workforce-core context.
// - Do not import other context adapters into domain/application.
// - The roster's has-timesheet flag is read through the TimesheetDirectory
//   port; wiring to the timesheet module happens in the composition root.
package contractorservice
