package kafka

import (
	"time"

	"github.com/google/uuid"
)

// OutboxRecord exists for schema migration only; the repository reads
// and writes outbox_events with raw SQL.
type OutboxRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateType string    `gorm:"type:varchar(100);not null"`
	AggregateID   string    `gorm:"type:uuid;not null"`
	EventType     string    `gorm:"type:varchar(100);not null"`
	Topic         string    `gorm:"type:varchar(255);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	RetryCount    int       `gorm:"not null;default:0"`
	ErrorMessage  string    `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
