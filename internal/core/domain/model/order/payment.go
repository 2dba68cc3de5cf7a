package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentCash is settled at the table; the core never initiates a
	// gateway charge for it.
	PaymentCash

	// PaymentOnline is charged asynchronously through the payment gateway
	// after submission.
	PaymentOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentCash:   "cash",
		PaymentOnline: "online",
	}
}

// PaymentMethodFromString parses the persistence/API representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks that the method is cash or online.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatus tracks the settlement state of an order independently of its
// fulfillment status:
//
//	pending ──> processing ──> completed ──> refunded
//	                 │
//	                 └──> failed
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending is the initial settlement state.
	PaymentPending

	// PaymentProcessing indicates an asynchronous gateway charge is in
	// flight.
	PaymentProcessing

	// PaymentCompleted indicates the charge succeeded.
	PaymentCompleted

	// PaymentFailed indicates the charge failed; the caller decides
	// whether to retry by resubmitting.
	PaymentFailed

	// PaymentRefunded indicates a completed charge was returned after the
	// order was cancelled.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending:    "pending",
		PaymentProcessing: "processing",
		PaymentCompleted:  "completed",
		PaymentFailed:     "failed",
		PaymentRefunded:   "refunded",
	}
}

// PaymentStatusFromString parses the persistence/API representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks that the status is one of the defined settlement states.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// transitionTo enforces the settlement chain above.
func (s PaymentStatus) transitionTo(target PaymentStatus) (PaymentStatus, error) {
	legal := map[PaymentStatus][]PaymentStatus{
		PaymentPending:    {PaymentProcessing},
		PaymentProcessing: {PaymentCompleted, PaymentFailed},
		PaymentCompleted:  {PaymentRefunded},
	}
	for _, allowed := range legal[s] {
		if allowed == target {
			return target, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("cannot move payment from %s to %s", s, target),
	)
}
