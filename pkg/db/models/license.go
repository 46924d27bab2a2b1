package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkawidia/lisensia-backend/pkg/enums"
)

// License grants a customer time-bounded access to an application, supervised
// by the responsible user. ReminderSent transitions only false -> true; a
// renewal is modeled upstream as a fresh row with a fresh flag.
type License struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ApplicationID uuid.UUID           `gorm:"column:application_id;type:uuid;not null"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	StartDate     time.Time           `gorm:"column:start_date;type:date;not null"`
	EndDate       time.Time           `gorm:"column:end_date;type:date;not null"`
	Status        enums.LicenseStatus `gorm:"column:status;not null;default:'active'"`
	ReminderSent  bool                `gorm:"column:reminder_sent;not null;default:false"`
	ContractValue decimal.Decimal     `gorm:"column:contract_value;type:numeric(14,2);not null;default:0"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
