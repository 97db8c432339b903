package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Complaint statuses. StatusMaterializing marks a provisional record whose
// images are not uploaded yet; it never survives a finished request.
const (
	StatusMaterializing = "materializing"
	StatusPending       = "pending"
	StatusInProgress    = "in-progress"
	StatusResolved      = "resolved"
	StatusRejected      = "rejected"
)

type User struct {
	UserID       string    `json:"id" db:"user_id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Complaint struct {
	ComplaintID string           `json:"id" db:"complaint_id"`
	UserID      string           `json:"user" db:"user_id"`
	Description string           `json:"description" db:"description"`
	Images      []ComplaintImage `json:"images" db:"-"`
	Location    Location         `json:"location" db:"-"`
	Lat         float64          `json:"-" db:"lat"`
	Lng         float64          `json:"-" db:"lng"`
	Status      string           `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ComplaintImage struct {
	ImageID     string    `json:"-" db:"image_id"`
	ComplaintID string    `json:"-" db:"complaint_id"`
	URL         string    `json:"url" db:"url"`
	PublicID    string    `json:"publicId" db:"public_id"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}
