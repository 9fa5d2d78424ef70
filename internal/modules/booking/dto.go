package booking

import "tutorhub/internal/domain"

type CreateBookingRequest struct {
	TutorID   string `json:"tutorId" binding:"required"`
	Date      string `json:"date" binding:"required,date"`
	StartTime string `json:"startTime" binding:"required,clock"`
	EndTime   string `json:"endTime" binding:"required,clock"`
	Subject   string `json:"subject" binding:"required,max=100"`
	Location  string `json:"location" binding:"omitempty,max=200"`
}

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// SlotView is one declared slot of a day and whether an active booking holds it.
type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Booked    bool   `json:"booked"`
}

type DaySlotsResponse struct {
	TutorID string         `json:"tutorId"`
	Date    string         `json:"date"`
	Day     domain.Weekday `json:"day"`
	Slots   []SlotView     `json:"slots"`
}
