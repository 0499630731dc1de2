package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/notifier"
	"github.com/travelxplore/travelxplore-api/internal/payment"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTooManyGuests   = errors.New("guest count exceeds package limit")
)

// Notifier publishes notification events. Implemented by notifier.Events.
type Notifier interface {
	BookingConfirmed(ctx context.Context, ev notifier.BookingConfirmedEvent)
	NewsletterSubscribed(ctx context.Context, email string)
}

type BookingService interface {
	CreateCheckoutSession(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error)
	VerifyPayment(ctx context.Context, sessionID string) (*models.Booking, bool, error)
	MyBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	AllBookings(ctx context.Context) ([]models.Booking, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type bookingService struct {
	bookings repository.BookingRepository
	packages repository.PackageRepository
	provider payment.Provider
	events   Notifier
	baseURL  string
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	provider payment.Provider,
	events Notifier,
	baseURL string,
) BookingService {
	return &bookingService{
		bookings: bookings,
		packages: packages,
		provider: provider,
		events:   events,
		baseURL:  baseURL,
	}
}

// CreateCheckoutSession opens a hosted payment session and records the
// pending booking keyed by the session id. The two steps are not atomic:
// a failure after the session is opened leaves an orphaned external
// session with no local row, which is accepted.
func (s *bookingService) CreateCheckoutSession(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error) {
	pkg, err := s.packages.FindByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	if pkg.MaxGuests > 0 && req.Guests > pkg.MaxGuests {
		return nil, ErrTooManyGuests
	}

	// Price snapshot: the persisted total never changes even if the
	// package price does.
	total := pkg.Price * float64(req.Guests)

	travelDate := req.TravelDate
	if travelDate == "" {
		travelDate = "Not specified"
	}

	params := payment.CheckoutParams{
		Title:       pkg.Title,
		Description: fmt.Sprintf("%d guests • %d days", req.Guests, pkg.DurationDays),
		UnitAmount:  int64(math.Round(pkg.Price * 100)),
		Quantity:    int64(req.Guests),
		SuccessURL:  s.baseURL + "/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   fmt.Sprintf("%s/package/%d?booking=cancelled", s.baseURL, pkg.ID),
		Metadata: map[string]string{
			"packageId":  fmt.Sprint(pkg.ID),
			"userId":     fmt.Sprint(userID),
			"guests":     fmt.Sprint(req.Guests),
			"travelDate": travelDate,
		},
	}
	if pkg.Image != nil {
		params.ImageURL = s.baseURL + *pkg.Image
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	booking := &models.Booking{
		UserID:          userID,
		PackageID:       pkg.ID,
		Guests:          req.Guests,
		TravelDate:      travelDate,
		TotalAmount:     total,
		StripeSessionID: sess.ID,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	return sess, nil
}

// VerifyPayment is the poll path: fetch the live session, and if paid apply
// the same idempotent confirm the webhook path uses. Repeat calls observe
// confirmed again; an unpaid session mutates nothing.
func (s *bookingService) VerifyPayment(ctx context.Context, sessionID string) (*models.Booking, bool, error) {
	sess, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("retrieve checkout session: %w", err)
	}

	if !sess.Paid {
		return nil, false, nil
	}

	transitioned, err := s.bookings.ConfirmBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	booking, err := s.bookings.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrBookingNotFound
		}
		return nil, false, err
	}

	if transitioned > 0 {
		s.notifyConfirmed(ctx, booking)
	}

	return booking, true, nil
}

// HandleWebhook is the push path. Signature failure aborts before any state
// is touched; an unrecognized event type is acknowledged and ignored.
func (s *bookingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	transitioned, err := s.bookings.ConfirmBySessionID(ctx, event.SessionID)
	if err != nil {
		return err
	}

	if transitioned > 0 {
		if booking, err := s.bookings.FindBySessionID(ctx, event.SessionID); err == nil {
			s.notifyConfirmed(ctx, booking)
		}
	}

	return nil
}

func (s *bookingService) MyBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookings.FindByUserID(ctx, userID)
}

func (s *bookingService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.FindAll(ctx)
}

func (s *bookingService) notifyConfirmed(ctx context.Context, booking *models.Booking) {
	if s.events == nil {
		return
	}
	ev := notifier.BookingConfirmedEvent{
		BookingID:   booking.ID,
		Guests:      booking.Guests,
		TotalAmount: booking.TotalAmount,
	}
	if booking.User != nil {
		ev.Email = booking.User.Email
	}
	if booking.Package != nil {
		ev.PackageTitle = booking.Package.Title
	}
	s.events.BookingConfirmed(ctx, ev)
}
