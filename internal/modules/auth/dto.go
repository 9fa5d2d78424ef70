package auth

import "tutorhub/internal/domain"

type StudentSignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
}

type TutorSignupRequest struct {
	Name           string              `json:"name" binding:"required,min=2,max=100"`
	Username       string              `json:"username" binding:"required,min=3,max=50"`
	Email          string              `json:"email" binding:"required,email"`
	Password       string              `json:"password" binding:"required,min=6"`
	ProfilePicture string              `json:"profilePicture" binding:"omitempty,url"`
	Profession     string              `json:"profession" binding:"omitempty,max=100"`
	About          string              `json:"about" binding:"omitempty,max=2000"`
	Price          float64             `json:"price" binding:"gte=0"`
	Subjects       []string            `json:"subjects" binding:"omitempty,dive,required,max=100"`
	Locations      []string            `json:"locations" binding:"omitempty,dive,required,max=100"`
	Availability   domain.Availability `json:"availability"`
	Contact        domain.Contact      `json:"contact"`
}

// LoginRequest accepts either email or username.
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserPublic struct {
	ID         string      `json:"id"`
	Role       domain.Role `json:"role"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	IsVerified *bool       `json:"isVerified,omitempty"`
}

type AuthResult struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}
