//go:build integration

package integration

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"github.com/travelxplore/travelxplore-api/internal/service"
	"github.com/travelxplore/travelxplore-api/pkg/token"
)

func createTestCatalog(t *testing.T) *models.Package {
	t.Helper()

	dest := &models.Destination{
		Name:        "Bali",
		Country:     "Indonesia",
		Description: "Island of the gods",
		Price:       899,
	}
	require.NoError(t, testDB.Create(dest).Error)

	pkg := &models.Package{
		DestinationID: dest.ID,
		Title:         "Bali Escape",
		Description:   "Seven days of beaches and temples",
		DurationDays:  7,
		Price:         199.99,
		MaxGuests:     10,
	}
	require.NoError(t, testDB.Create(pkg).Error)
	return pkg
}

func createPendingBooking(t *testing.T, pkg *models.Package, sessionID string) *models.Booking {
	t.Helper()

	user := &models.User{
		Username: "traveler-" + sessionID,
		Email:    sessionID + "@example.com",
		Password: "irrelevant",
		FullName: "Test Traveler",
		Role:     models.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	booking := &models.Booking{
		UserID:          user.ID,
		PackageID:       pkg.ID,
		Guests:          2,
		TravelDate:      "2026-10-01",
		TotalAmount:     399.98,
		StripeSessionID: sessionID,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}
	require.NoError(t, testDB.Create(booking).Error)
	return booking
}

// The poll and webhook paths both apply the same conditional update; only
// the first application may report a transition.
func TestConfirmBySessionID_FirstTransitionOnly(t *testing.T) {
	cleanTables()
	pkg := createTestCatalog(t)
	createPendingBooking(t, pkg, "cs_once")

	bookings := repository.NewBookingRepository(testDB)

	affected, err := bookings.ConfirmBySessionID(t.Context(), "cs_once")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected, "first confirm should transition the row")

	affected, err = bookings.ConfirmBySessionID(t.Context(), "cs_once")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected, "repeat confirm must be a no-op")

	stored, err := bookings.FindBySessionID(t.Context(), "cs_once")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
}

// Poll and webhook racing on the same session: exactly one caller observes
// the transition regardless of interleaving.
func TestConfirmBySessionID_ConcurrentRace(t *testing.T) {
	cleanTables()
	pkg := createTestCatalog(t)
	createPendingBooking(t, pkg, "cs_race")

	bookings := repository.NewBookingRepository(testDB)

	attempts := 10
	var wg sync.WaitGroup
	transitions := make(chan int64, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			affected, err := bookings.ConfirmBySessionID(t.Context(), "cs_race")
			if err == nil {
				transitions <- affected
			}
		}()
	}
	wg.Wait()
	close(transitions)

	var total int64
	for n := range transitions {
		total += n
	}
	assert.Equal(t, int64(1), total, "exactly one caller should observe the transition")
}

func TestConfirmBySessionID_UnknownSession(t *testing.T) {
	cleanTables()

	bookings := repository.NewBookingRepository(testDB)
	affected, err := bookings.ConfirmBySessionID(t.Context(), "cs_nowhere")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	cleanTables()

	users := repository.NewUserRepository(testDB)
	tokens := token.NewManager("integration-secret", 1)
	svc := service.NewAuthService(users, tokens)

	_, err := svc.Register(t.Context(), dto.RegisterRequest{
		Username: "traveler",
		Email:    "Dup@Example.com",
		Password: "secret1",
		FullName: "Test Traveler",
	})
	require.NoError(t, err)

	_, err = svc.Register(t.Context(), dto.RegisterRequest{
		Username: "traveler2",
		Email:    "dup@example.com",
		Password: "secret1",
		FullName: "Other Traveler",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestDeleteDestination_RestrictedWhileReferenced(t *testing.T) {
	cleanTables()
	pkg := createTestCatalog(t)

	destinations := repository.NewDestinationRepository(testDB)
	packages := repository.NewPackageRepository(testDB)
	svc := service.NewCatalogService(destinations, packages, nil)

	err := svc.DeleteDestination(t.Context(), pkg.DestinationID)
	assert.ErrorIs(t, err, service.ErrDestinationInUse)

	require.NoError(t, svc.DeletePackage(t.Context(), pkg.ID))
	require.NoError(t, svc.DeleteDestination(t.Context(), pkg.DestinationID))
}

func TestNewsletterSubscribe_DuplicateIsNoOp(t *testing.T) {
	cleanTables()

	subscribers := repository.NewNewsletterRepository(testDB)

	created, err := subscribers.Subscribe(t.Context(), "news@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = subscribers.Subscribe(t.Context(), "news@example.com")
	require.NoError(t, err)
	assert.False(t, created, "duplicate subscription must not create a row")

	list, err := subscribers.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
