package tutor

import "tutorhub/internal/domain"

type SearchQuery struct {
	Subject  string   `form:"subject"`
	Location string   `form:"location"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Rating   *float64 `form:"rating" binding:"omitempty,gte=0,lte=5"`
	Page     string   `form:"page"`
	Limit    string   `form:"limit"`
}

// UpdateProfileRequest is a partial update. Nil fields stay unchanged.
type UpdateProfileRequest struct {
	Name           *string              `json:"name" binding:"omitempty,min=2,max=100"`
	ProfilePicture *string              `json:"profilePicture" binding:"omitempty,url"`
	Profession     *string              `json:"profession" binding:"omitempty,max=100"`
	About          *string              `json:"about" binding:"omitempty,max=2000"`
	Price          *float64             `json:"price" binding:"omitempty,gte=0"`
	Subjects       *[]string            `json:"subjects" binding:"omitempty,dive,required,max=100"`
	Locations      *[]string            `json:"locations" binding:"omitempty,dive,required,max=100"`
	Availability   *domain.Availability `json:"availability"`
	Contact        *domain.Contact      `json:"contact"`
	Password       *string              `json:"password"`
}
