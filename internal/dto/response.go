package dto

import (
	"time"

	"github.com/travelxplore/travelxplore-api/internal/models"
)

// Response is the uniform JSON envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    UserResponse `json:"user"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

type DestinationListResponse struct {
	Success      bool                 `json:"success"`
	Count        int                  `json:"count"`
	Destinations []models.Destination `json:"destinations"`
}

type DestinationDetailResponse struct {
	Success     bool               `json:"success"`
	Destination models.Destination `json:"destination"`
	Packages    []models.Package   `json:"packages"`
}

type CountriesResponse struct {
	Success   bool     `json:"success"`
	Countries []string `json:"countries"`
}

type CreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type PackageResponse struct {
	ID              uint      `json:"id"`
	DestinationID   uint      `json:"destination_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationDays    int       `json:"duration_days"`
	Price           float64   `json:"price"`
	Inclusions      string    `json:"inclusions"`
	Exclusions      string    `json:"exclusions"`
	Image           *string   `json:"image"`
	Rating          float64   `json:"rating"`
	MaxGuests       int       `json:"max_guests"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
	DestinationName string    `json:"destination_name,omitempty"`
	Country         string    `json:"country,omitempty"`
}

type PackageListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Packages []PackageResponse `json:"packages"`
}

type PackageDetailResponse struct {
	Success         bool              `json:"success"`
	Package         PackageResponse   `json:"package"`
	RelatedPackages []PackageResponse `json:"relatedPackages"`
}

type CheckoutResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type BookingResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"user_id"`
	PackageID       uint                 `json:"package_id"`
	Guests          int                  `json:"guests"`
	TravelDate      string               `json:"travel_date"`
	TotalAmount     float64              `json:"total_amount"`
	StripeSessionID string               `json:"stripe_session_id"`
	Status          models.BookingStatus `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time            `json:"created_at"`
	PackageName     string               `json:"package_name,omitempty"`
	DestinationName string               `json:"destination_name,omitempty"`
	CustomerName    string               `json:"customer_name,omitempty"`
	CustomerEmail   string               `json:"customer_email,omitempty"`
}

type VerifyPaymentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type BookingListResponse struct {
	Success  bool              `json:"success"`
	Bookings []BookingResponse `json:"bookings"`
}

type ContactListResponse struct {
	Success  bool                    `json:"success"`
	Count    int                     `json:"count"`
	Messages []models.ContactMessage `json:"messages"`
}

type ContactDetailResponse struct {
	Success bool                  `json:"success"`
	Message models.ContactMessage `json:"message"`
}

type ContactStats struct {
	Total   int64 `json:"total"`
	New     int64 `json:"new"`
	Replied int64 `json:"replied"`
}

type ContactStatsResponse struct {
	Success bool         `json:"success"`
	Stats   ContactStats `json:"stats"`
}

type SubscriberListResponse struct {
	Success     bool                          `json:"success"`
	Count       int                           `json:"count"`
	Subscribers []models.NewsletterSubscriber `json:"subscribers"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToPackageResponse(p *models.Package) PackageResponse {
	resp := PackageResponse{
		ID:            p.ID,
		DestinationID: p.DestinationID,
		Title:         p.Title,
		Description:   p.Description,
		DurationDays:  p.DurationDays,
		Price:         p.Price,
		Inclusions:    p.Inclusions,
		Exclusions:    p.Exclusions,
		Image:         p.Image,
		Rating:        p.Rating,
		MaxGuests:     p.MaxGuests,
		Featured:      p.Featured,
		CreatedAt:     p.CreatedAt,
	}
	if p.Destination != nil {
		resp.DestinationName = p.Destination.Name
		resp.Country = p.Destination.Country
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		PackageID:       b.PackageID,
		Guests:          b.Guests,
		TravelDate:      b.TravelDate,
		TotalAmount:     b.TotalAmount,
		StripeSessionID: b.StripeSessionID,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
	}
	if b.Package != nil {
		resp.PackageName = b.Package.Title
		if b.Package.Destination != nil {
			resp.DestinationName = b.Package.Destination.Name
		}
	}
	if b.User != nil {
		resp.CustomerName = b.User.FullName
		resp.CustomerEmail = b.User.Email
	}
	return resp
}
