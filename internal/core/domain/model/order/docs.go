// Package order provides the Order aggregate of the fulfillment core: the
// record created when a cart is submitted, its immutable item lines with
// price snapshots, and the status state machine that governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning items, derived totals, assignment,
//     and payment state
//   - Item: an immutable order line priced from the catalog at submission
//   - Status: the lifecycle state machine (pending through completed, with
//     cancellation from every non-terminal state)
//   - PaymentMethod / PaymentStatus: settlement value objects
//
// Key business rules:
//   - totalAmount always equals subtotal + taxAmount + tipAmount
//   - items are never edited after creation; corrections cancel the order
//   - the Assigned status is entered only through the assignment engine
//   - staff-driven transitions require the actor to be the assigned staff
//     member; owners may always cancel
//   - orders are never deleted; cancellation is terminal
package order
