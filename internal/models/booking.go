package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Booking is a purchase intent. TotalAmount is a snapshot of
// package.price * guests taken at checkout time and never recomputed.
// Rows are never deleted; status only moves pending -> confirmed.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"user_id"`
	PackageID       uint          `gorm:"not null;index" json:"package_id"`
	Guests          int           `gorm:"not null" json:"guests"`
	TravelDate      string        `gorm:"size:50" json:"travel_date"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	StripeSessionID string        `gorm:"size:255;uniqueIndex;not null" json:"stripe_session_id"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
