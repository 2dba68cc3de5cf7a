// Package guard implements the constructor guard pattern used by domain
// objects to detect zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. Embed it as a private field and set it with
// NewConstructorGuard inside the constructor; a zero-value struct then fails
// Validate because its guard was never set.
//
// Example:
//
//	type Entry struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewEntry(orderID kernel.UUID) (Entry, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return Entry{}, err
//	    }
//	    return Entry{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (e Entry) Validate() error {
//	    return e.guard.Validate(ErrEntryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
