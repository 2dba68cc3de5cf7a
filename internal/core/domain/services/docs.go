// Package services provides domain services that orchestrate business
// operations across multiple domain entities of the fulfillment core. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - StaffScorer: a domain service that scores available staff members and
//     selects the best candidate for a new order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
