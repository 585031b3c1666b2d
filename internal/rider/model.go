package rider

import "time"

type Rider struct {
	ID           string    `json:"id"         db:"id"`
	Name         string    `json:"name"       db:"name"`
	Email        string    `json:"email"      db:"email"`
	Phone        string    `json:"phone"      db:"phone"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	Active       bool      `json:"active"     db:"active"`
	CreatedAt    time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"  db:"updated_at"`
}

// Listed is a rider with the number of deliveries currently on them.
type Listed struct {
	Rider
	OpenDeliveries int `json:"openDeliveries" db:"open_deliveries"`
}

// CreateRiderRequest payload of rider creation.
// swagger:model CreateRiderRequest
type CreateRiderRequest struct {
	Name     string `json:"name"     binding:"required,max=100"       example:"Giulia Rossi"`
	Email    string `json:"email"    binding:"required,email"         example:"giulia@pastosano.it"`
	Phone    string `json:"phone"    binding:"required,phone"         example:"+39 333 1234567"`
	Password string `json:"password" binding:"required,min=8,max=72"  example:"s3cure-pass"`
}

// UpdateRiderRequest payload of partial update; empty fields are left unchanged.
// swagger:model UpdateRiderRequest
type UpdateRiderRequest struct {
	RiderID  string `json:"riderId"  binding:"required"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,phone"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

// LoginRequest is shared by rider and admin login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
