package licenses

import (
	"time"

	"github.com/google/uuid"
)

// ReminderCandidate is one row of the reminder selection join: a license
// crossing the reminder threshold plus the display fields needed to format
// the outbound message. Phones are raw as stored; normalization happens at
// dispatch time.
type ReminderCandidate struct {
	LicenseID     uuid.UUID `gorm:"column:license_id"`
	EndDate       time.Time `gorm:"column:end_date"`
	CustomerName  string    `gorm:"column:customer_name"`
	CustomerPhone string    `gorm:"column:customer_phone"`
	UserName      string    `gorm:"column:user_name"`
	UserPhone     string    `gorm:"column:user_phone"`
	AppName       string    `gorm:"column:app_name"`
}
