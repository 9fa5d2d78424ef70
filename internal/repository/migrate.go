package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// activeSlotIndex keeps at most one pending or confirmed booking per tutor slot.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot
ON bookings (tutor_id, date, start_time, end_time)
WHERE status IN ('pending', 'confirmed')`

func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&tutorModel{},
		&tutorSubjectModel{},
		&tutorLocationModel{},
		&studentModel{},
		&adminModel{},
		&bookingModel{},
		&reviewModel{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}
	return nil
}
