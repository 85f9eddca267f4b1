package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps the same users table the auth module writes; this package
// only ever reads it or updates profile fields.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `gorm:"type:varchar(255);not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(50);not null"`
	Phone      string    `gorm:"type:varchar(50)"`
	Department string    `gorm:"type:varchar(100)"`

	ProfileImage          string     `gorm:"type:text"`
	ProfileImageFilename  string     `gorm:"type:varchar(255)"`
	ProfileImageUpdatedAt *time.Time `gorm:""`

	CreatedAt time.Time
	UpdatedAt time.Time
}
