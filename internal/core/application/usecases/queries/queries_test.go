package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

func TestNewGetActiveOrdersQuery(t *testing.T) {
	restaurantID := kernel.NewUUID()

	query, err := queries.NewGetActiveOrdersQuery(restaurantID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, restaurantID.IsEqual(query.RestaurantID()))
}

func TestNewGetActiveOrdersQuery_RejectsEmptyRestaurantID(t *testing.T) {
	_, err := queries.NewGetActiveOrdersQuery(kernel.UUID{})

	assert.Error(t, err)
}

func TestGetActiveOrdersQuery_Validate_RejectsDefaultConstructedQuery(t *testing.T) {
	var query queries.GetActiveOrdersQuery

	assert.ErrorIs(t, query.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
}

func TestNewGetBacklogQuery(t *testing.T) {
	restaurantID := kernel.NewUUID()

	query, err := queries.NewGetBacklogQuery(restaurantID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, restaurantID.IsEqual(query.RestaurantID()))
}

func TestGetBacklogQuery_Validate_RejectsDefaultConstructedQuery(t *testing.T) {
	var query queries.GetBacklogQuery

	assert.ErrorIs(t, query.Validate(), queries.ErrGetBacklogQueryIsNotConstructed)
}
