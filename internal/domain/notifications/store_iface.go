package notifications

import (
	"context"
	"time"
)

// Recipient is the slice of a user the reminder sweep needs.
type Recipient struct {
	ID    string
	Name  string
	Email string
}

type StoreAPI interface {
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, notificationID string) error
	UserRecipient(ctx context.Context, userID string) (Recipient, error)
	// StaffMissingDaily returns active staff users with no daily report
	// dated within the window.
	StaffMissingDaily(ctx context.Context, dayStart, dayEnd time.Time) ([]Recipient, error)
}
