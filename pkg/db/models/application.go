package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/arkawidia/lisensia-backend/pkg/enums"
)

// Application is a distributable product that licenses are issued against.
type Application struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Platform    enums.AppPlatform `gorm:"column:platform;not null;default:'web'"`
	Version     string            `gorm:"column:version;not null"`
	Description *string           `gorm:"column:description"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
