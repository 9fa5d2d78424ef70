package domain

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTutor || r == RoleAdmin
}

type Contact struct {
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Zoom     string `json:"zoom,omitempty"`
}

type Tutor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	ProfilePicture string       `json:"profilePicture,omitempty"`
	Profession     string       `json:"profession,omitempty"`
	About          string       `json:"about,omitempty"`
	Price          float64      `json:"price"`
	Subjects       []string     `json:"subjects"`
	Locations      []string     `json:"locations"`
	Availability   Availability `json:"availability"`
	Contact        Contact      `json:"contact"`
	Rating         Rating       `json:"rating"`
	IsVerified     bool         `json:"isVerified"`
	Bookings       []string     `json:"bookings,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Bookings     []string  `json:"bookings,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Admin exists only to authorize privileged operations.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID   string
	Role Role
}
