package models

import "time"

type MessageStatus string

const (
	MessageNew     MessageStatus = "new"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

type ContactMessage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"size:100;not null" json:"name"`
	Email     string        `gorm:"size:255;not null" json:"email"`
	Subject   string        `gorm:"size:200;not null" json:"subject"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    MessageStatus `gorm:"type:varchar(10);not null;default:'new'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
