package backlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

func Test_NewEntry_StampsEnqueueTime(t *testing.T) {
	orderID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	entry, err := NewEntry(orderID, restaurantID)

	require.NoError(t, err)
	assert.True(t, orderID.IsEqual(entry.OrderID()))
	assert.True(t, restaurantID.IsEqual(entry.RestaurantID()))
	assert.WithinDuration(t, time.Now().UTC(), entry.EnqueuedAt(), time.Second)
}

func Test_NewEntry_RejectsEmptyIdentifiers(t *testing.T) {
	_, err := NewEntry(kernel.UUID{}, kernel.NewUUID())
	assert.Error(t, err)

	_, err = NewEntry(kernel.NewUUID(), kernel.UUID{})
	assert.Error(t, err)
}

func Test_RestoreEntry_PreservesEnqueueTime(t *testing.T) {
	enqueuedAt := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)

	entry, err := RestoreEntry(kernel.NewUUID(), kernel.NewUUID(), enqueuedAt)

	require.NoError(t, err)
	assert.Equal(t, enqueuedAt, entry.EnqueuedAt())
}

func Test_Entry_Validate_RejectsDefaultConstructedEntry(t *testing.T) {
	var entry Entry
	assert.ErrorIs(t, entry.Validate(), ErrEntryIsNotConstructed)

	var nilEntry *Entry
	assert.ErrorIs(t, nilEntry.Validate(), ErrEntryIsNotConstructed)
}
