package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(50);not null;default:'employee'"`

	Phone      string `gorm:"type:varchar(50)"`
	Department string `gorm:"type:varchar(100)"`

	// Profile photo stored inline as a base64 data URL, as the mobile
	// client expects it.
	ProfileImage          string     `gorm:"type:text"`
	ProfileImageFilename  string     `gorm:"type:varchar(255)"`
	ProfileImageUpdatedAt *time.Time `gorm:""`

	CreatedAt time.Time
	UpdatedAt time.Time
}
