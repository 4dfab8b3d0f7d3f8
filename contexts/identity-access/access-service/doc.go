// Package accessservice implements the authorization boundary of Foreman.
//
// Layering:
// - domain: principal model, role constants, denial errors
// - application: the access guard decision function and identity resolution
// - ports: identity-provider boundary for authentication collaborators
// - adapters: header-credential identity provider for HTTP transports
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - The guard decides from the principal alone; it never reads ledger data,
//   so a denial can never leak whether a foreign record exists.
package accessservice
