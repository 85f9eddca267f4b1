package events

import "time"

const LeaveNotificationTopic = "hr.leave.notification.v1"

// LeaveNotificationEvent fans a stored in-app notification out to
// external channels (mobile push, email relay) through the outbox.
type LeaveNotificationEvent struct {
	EventType      string    `json:"event_type"`
	NotificationID string    `json:"notification_id"`
	RecipientEmail string    `json:"recipient_email"`
	Category       string    `json:"category"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const EventTypeLeaveNotificationCreated = "leave.notification.created"
