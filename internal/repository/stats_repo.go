package repository

import (
	"context"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// PlatformStats are the headline counters of the admin dashboard.
type PlatformStats struct {
	Students         int64            `json:"students"`
	Tutors           int64            `json:"tutors"`
	VerifiedTutors   int64            `json:"verifiedTutors"`
	Reviews          int64            `json:"reviews"`
	Bookings         int64            `json:"bookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
}

type statusCount struct {
	Status string
	Total  int64
}

func (r *StatsRepository) Platform(ctx context.Context) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	out := &PlatformStats{BookingsByStatus: map[string]int64{}}

	if err := db.Model(&studentModel{}).Count(&out.Students).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&tutorModel{}).Count(&out.Tutors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&tutorModel{}).Where("is_verified = ?", true).Count(&out.VerifiedTutors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&reviewModel{}).Count(&out.Reviews).Error; err != nil {
		return nil, err
	}

	var rows []statusCount
	err := db.Model(&bookingModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out.BookingsByStatus[row.Status] = row.Total
		out.Bookings += row.Total
	}
	return out, nil
}
