package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/events"
	"github.com/theesh-25755/HR-mobile-app/internal/messaging/kafka"
	notificationerrors "github.com/theesh-25755/HR-mobile-app/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Publish(ctx context.Context, recipientEmail, category, message string) error
	ListForRecipient(ctx context.Context, email string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, email, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

// Publish stores an in-app notification and enqueues a matching outbox
// event in the same transaction, so delivery to external channels can
// never observe a notification that was not persisted.
func (s *service) Publish(ctx context.Context, recipientEmail, category, message string) error {
	now := time.Now().UTC()
	n := &Notification{
		ID:             uuid.New(),
		RecipientEmail: recipientEmail,
		Category:       category,
		Message:        message,
		Status:         StatusUnread,
		CreatedAt:      now,
	}

	payload, err := json.Marshal(events.LeaveNotificationEvent{
		EventType:      events.EventTypeLeaveNotificationCreated,
		NotificationID: n.ID.String(),
		RecipientEmail: recipientEmail,
		Category:       category,
		Message:        message,
		OccurredAt:     now,
	})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, n); err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "notification",
		AggregateID:   n.ID.String(),
		EventType:     events.EventTypeLeaveNotificationCreated,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("notification stored",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient", recipientEmail),
		zap.String("category", category),
	)
	return nil
}

func (s *service) ListForRecipient(ctx context.Context, email string) ([]NotificationResponse, error) {
	items, err := s.repo.ListByRecipient(ctx, email)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = NotificationResponse{
			ID:        n.ID.String(),
			Category:  n.Category,
			Message:   n.Message,
			Status:    n.Status,
			CreatedAt: n.CreatedAt,
		}
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, email, id string) error {
	affected, err := s.repo.MarkRead(ctx, email, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}
