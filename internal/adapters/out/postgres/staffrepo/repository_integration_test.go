package staffrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/staffrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// StaffRepositoryIntegrationTestSuite verifies staff persistence behavior,
// in particular the conditional claim, against a real PostgreSQL container.
type StaffRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *staffrepo.GormStaffRepository
	tracker    *MockAggregateTracker
}

func (suite *StaffRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&staffrepo.StaffDTO{}))
}

func (suite *StaffRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE staff_members").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = staffrepo.NewGormStaffRepository(suite.db, suite.tracker)
}

func (suite *StaffRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StaffRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAggregate() {
	ctx := context.Background()

	member := suite.createTestStaff(kernel.NewUUID(), "Alice", 7.5)
	suite.tracker.On("TrackAggregate", member.ID(), member).Once()
	suite.Require().NoError(suite.repository.Add(ctx, member))

	retrieved, err := suite.repository.Get(ctx, member.ID())
	suite.Require().NoError(err)

	suite.Equal(member.ID(), retrieved.ID())
	suite.Equal(member.RestaurantID(), retrieved.RestaurantID())
	suite.Equal("Alice", retrieved.Name())
	suite.True(retrieved.IsAvailable())
	suite.InDelta(7.5, retrieved.PerformanceRating(), 0.0001)
	suite.Equal(0, retrieved.TotalOrdersCompleted())
	suite.Equal(member.HourlyRate().Amount(), retrieved.HourlyRate().Amount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestGet_NonExistentStaff_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestUpdate_ReleasedStaff_PersistsCounterAndAvailability() {
	ctx := context.Background()

	member := suite.createTestStaff(kernel.NewUUID(), "Bob", 6.0)
	suite.tracker.On("TrackAggregate", member.ID(), member).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, member))

	suite.Require().NoError(member.TakeOrder())
	member.Release(true)
	suite.Require().NoError(suite.repository.Update(ctx, member))

	retrieved, err := suite.repository.Get(ctx, member.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsAvailable())
	suite.Equal(1, retrieved.TotalOrdersCompleted())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestGetAllByRestaurant_ReturnsOnlyRestaurantStaff() {
	ctx := context.Background()

	restaurantID := kernel.NewUUID()
	first := suite.createTestStaff(restaurantID, "Alice", 7.0)
	second := suite.createTestStaff(restaurantID, "Bob", 5.0)
	other := suite.createTestStaff(kernel.NewUUID(), "Carol", 9.0)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	members, err := suite.repository.GetAllByRestaurant(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.Len(members, 2)
	for _, member := range members {
		suite.Equal(restaurantID, member.RestaurantID())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestClaimAvailable_AvailableStaff_FlipsToBusy() {
	ctx := context.Background()

	member := suite.createTestStaff(kernel.NewUUID(), "Alice", 7.0)
	suite.tracker.On("TrackAggregate", member.ID(), member).Once()
	suite.Require().NoError(suite.repository.Add(ctx, member))

	claimed, err := suite.repository.ClaimAvailable(ctx, member.ID())
	suite.Require().NoError(err)
	suite.False(claimed.IsAvailable())

	retrieved, err := suite.repository.Get(ctx, member.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsAvailable())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestClaimAvailable_BusyStaff_ReturnsNotAvailable() {
	ctx := context.Background()

	member := suite.createTestStaff(kernel.NewUUID(), "Alice", 7.0)
	suite.tracker.On("TrackAggregate", member.ID(), member).Once()
	suite.Require().NoError(suite.repository.Add(ctx, member))

	_, err := suite.repository.ClaimAvailable(ctx, member.ID())
	suite.Require().NoError(err)

	claimed, err := suite.repository.ClaimAvailable(ctx, member.ID())
	suite.Nil(claimed)
	suite.Require().ErrorIs(err, staff.ErrStaffNotAvailable)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestClaimAvailable_NonExistentStaff_ReturnsNotFoundError() {
	ctx := context.Background()

	claimed, err := suite.repository.ClaimAvailable(ctx, kernel.NewUUID())

	suite.Nil(claimed)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestClaimAvailable_ConcurrentClaims_ExactlyOneWins() {
	ctx := context.Background()

	member := suite.createTestStaff(kernel.NewUUID(), "Alice", 7.0)
	suite.tracker.On("TrackAggregate", member.ID(), member).Once()
	suite.Require().NoError(suite.repository.Add(ctx, member))

	const claimers = 5
	errCh := make(chan error, claimers)
	for range claimers {
		go func() {
			_, err := suite.repository.ClaimAvailable(ctx, member.ID())
			errCh <- err
		}()
	}

	var won, lost int
	for range claimers {
		err := <-errCh
		switch {
		case err == nil:
			won++
		default:
			suite.Require().ErrorIs(err, staff.ErrStaffNotAvailable)
			lost++
		}
	}

	suite.Equal(1, won)
	suite.Equal(claimers-1, lost)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *StaffRepositoryIntegrationTestSuite) createTestStaff(
	restaurantID kernel.UUID, name string, rating float64,
) *staff.StaffMember {
	hourlyRate, err := kernel.NewMoney(2500)
	suite.Require().NoError(err)

	member, err := staff.NewStaffMember(kernel.NewUUID(), restaurantID, name, rating, hourlyRate)
	suite.Require().NoError(err)
	return member
}

func TestStaffRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StaffRepositoryIntegrationTestSuite))
}
