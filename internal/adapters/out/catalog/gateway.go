// Package catalog implements the read-side gateway to the menu catalog. The
// menu itself lives in a table owned by another part of the system; this
// adapter only reads pricing snapshots from it, fronted by a short-lived
// cache so a burst of submissions does not hammer the table.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/cache"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// priceTTL bounds how stale a cached price may be. A menu edit takes at most
// this long to reach new orders.
const priceTTL = time.Minute

// MenuItemDTO is the read-only projection of the externally owned menu table.
type MenuItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Price           int64
	PrepTimeMinutes int
	IsAvailable     bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// cachedPrice is the cache wire format of one pricing snapshot.
type cachedPrice struct {
	Price           int64 `json:"price"`
	PrepTimeMinutes int   `json:"prep_time_minutes"`
}

// GormCatalogGateway implements CatalogGateway on the menu table with a cache
// in front.
type GormCatalogGateway struct {
	db     *gorm.DB
	store  cache.Store
	logger *slog.Logger
}

// NewGormCatalogGateway creates a new catalog gateway.
func NewGormCatalogGateway(db *gorm.DB, store cache.Store, logger *slog.Logger) *GormCatalogGateway {
	return &GormCatalogGateway{
		db:     db,
		store:  store,
		logger: logger,
	}
}

// GetPrice returns the pricing snapshot of one menu item. Unknown or
// unavailable items map to ErrMenuItemNotFound; infrastructure failures wrap
// ErrCatalogUnavailable so callers can tell the two apart.
func (g *GormCatalogGateway) GetPrice(ctx context.Context, menuItemID kernel.UUID) (*catalog.MenuItemPrice, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}

	if snapshot := g.fromCache(ctx, menuItemID); snapshot != nil {
		return snapshot, nil
	}

	var dto MenuItemDTO
	err := g.db.WithContext(ctx).First(&dto, "id = ?", menuItemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrCatalogUnavailable, err)
	}

	if !dto.IsAvailable {
		return nil, ports.ErrMenuItemNotFound
	}

	snapshot, err := g.toSnapshot(menuItemID, dto.Price, dto.PrepTimeMinutes)
	if err != nil {
		return nil, err
	}

	g.toCache(ctx, menuItemID, dto.Price, dto.PrepTimeMinutes)
	return snapshot, nil
}

func (g *GormCatalogGateway) fromCache(ctx context.Context, menuItemID kernel.UUID) *catalog.MenuItemPrice {
	raw, err := g.store.Get(ctx, priceKey(menuItemID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.logger.Warn("catalog cache read failed", "menu_item_id", menuItemID, "error", err)
		}
		return nil
	}

	var cached cachedPrice
	if err := json.Unmarshal(raw, &cached); err != nil {
		g.logger.Warn("catalog cache entry corrupt", "menu_item_id", menuItemID, "error", err)
		return nil
	}

	snapshot, err := g.toSnapshot(menuItemID, cached.Price, cached.PrepTimeMinutes)
	if err != nil {
		return nil
	}
	return snapshot
}

func (g *GormCatalogGateway) toCache(ctx context.Context, menuItemID kernel.UUID, price int64, prepTime int) {
	raw, err := json.Marshal(cachedPrice{Price: price, PrepTimeMinutes: prepTime})
	if err != nil {
		return
	}

	if err := g.store.Set(ctx, priceKey(menuItemID), raw, priceTTL); err != nil {
		g.logger.Warn("catalog cache write failed", "menu_item_id", menuItemID, "error", err)
	}
}

func (g *GormCatalogGateway) toSnapshot(menuItemID kernel.UUID, price int64, prepTime int) (*catalog.MenuItemPrice, error) {
	unitPrice, err := kernel.NewMoney(price)
	if err != nil {
		return nil, err
	}
	return catalog.NewMenuItemPrice(menuItemID, unitPrice, prepTime)
}

func priceKey(menuItemID kernel.UUID) string {
	return "catalog:price:" + menuItemID.String()
}
