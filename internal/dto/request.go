package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckoutRequest struct {
	PackageID  uint   `json:"packageId" validate:"required"`
	Guests     int    `json:"guests" validate:"required,gte=1"`
	TravelDate string `json:"travelDate"`
}

// Catalog create/update requests arrive as multipart form fields alongside the
// optional image file, so they are bound field-by-field in the handlers rather
// than through these structs.
