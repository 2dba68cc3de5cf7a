package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

func Test_NewMenuItemPrice_CreatesSnapshot(t *testing.T) {
	menuItemID := kernel.NewUUID()
	price, err := kernel.NewMoney(1250)
	require.NoError(t, err)

	snapshot, err := NewMenuItemPrice(menuItemID, price, 15)

	require.NoError(t, err)
	assert.True(t, menuItemID.IsEqual(snapshot.MenuItemID()))
	assert.Equal(t, int64(1250), snapshot.UnitPrice().Amount())
	assert.Equal(t, 15, snapshot.PrepTimeMinutes())
}

func Test_NewMenuItemPrice_RejectsNonPositivePrice(t *testing.T) {
	_, err := NewMenuItemPrice(kernel.NewUUID(), kernel.ZeroMoney(), 15)

	assert.Error(t, err)
}

func Test_NewMenuItemPrice_RejectsNegativePrepTime(t *testing.T) {
	price, err := kernel.NewMoney(1250)
	require.NoError(t, err)

	_, err = NewMenuItemPrice(kernel.NewUUID(), price, -1)

	assert.Error(t, err)
}

func Test_MenuItemPrice_Validate_RejectsDefaultConstructedSnapshot(t *testing.T) {
	var snapshot MenuItemPrice
	assert.ErrorIs(t, snapshot.Validate(), ErrMenuItemPriceIsNotConstructed)

	var nilSnapshot *MenuItemPrice
	assert.ErrorIs(t, nilSnapshot.Validate(), ErrMenuItemPriceIsNotConstructed)
}
