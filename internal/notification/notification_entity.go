package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientEmail string    `gorm:"type:varchar(255);index;not null"`
	Category       string    `gorm:"type:varchar(100);not null"`
	Message        string    `gorm:"type:text;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'unread'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
