package models

import "time"

type Destination struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Country          string    `gorm:"size:100;not null;index" json:"country"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	ShortDescription string    `gorm:"size:255" json:"short_description"`
	Image            *string   `json:"image"`
	Price            float64   `gorm:"not null" json:"price"`
	Rating           float64   `gorm:"default:5.0" json:"rating"`
	Featured         bool      `gorm:"default:false" json:"featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Package struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DestinationID uint      `gorm:"not null;index" json:"destination_id"`
	Title         string    `gorm:"size:150;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	DurationDays  int       `gorm:"not null" json:"duration_days"`
	Price         float64   `gorm:"not null" json:"price"`
	Inclusions    string    `gorm:"type:text" json:"inclusions"`
	Exclusions    string    `gorm:"type:text" json:"exclusions"`
	Image         *string   `json:"image"`
	Rating        float64   `gorm:"default:5.0" json:"rating"`
	MaxGuests     int       `gorm:"default:10" json:"max_guests"`
	Featured      bool      `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}
