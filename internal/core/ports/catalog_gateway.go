package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// Catalog lookup errors. Handlers map the first to a client error and the
// second to a retryable server error.
var (
	// ErrMenuItemNotFound is returned when the referenced menu item does
	// not exist in the catalog.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrCatalogUnavailable is returned when the catalog cannot be
	// reached; the submission fails rather than pricing the cart from
	// stale guesses.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogGateway is the read-side port to the menu catalog. Order submission
// uses it to snapshot current prices into order items.
type CatalogGateway interface {
	// GetPrice returns the pricing snapshot of one menu item.
	GetPrice(ctx context.Context, menuItemID kernel.UUID) (*catalog.MenuItemPrice, error)
}
