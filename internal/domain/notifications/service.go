package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@reportdesk.local"}
}

// Create persists the notification and best-effort emails the
// recipient. Email failures are logged, never surfaced.
func (s *Service) Create(ctx context.Context, userID, ntype, title, message string, relatedID *string) error {
	_, err := s.store.CreateNotification(ctx, Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	})
	if err != nil {
		return err
	}

	if s.Mailer == nil {
		return nil
	}
	recipient, err := s.store.UserRecipient(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "userId", userID, "err", err)
		return nil
	}
	if recipient.Email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, recipient.Email, title, message); err != nil {
		slog.Warn("notification email send failed", "userId", userID, "err", err)
	}
	return nil
}

// ReportLocked and ReportUnlocked back the report lifecycle's side
// channel.

func (s *Service) ReportLocked(ctx context.Context, ownerID, reportID string, date time.Time) error {
	message := fmt.Sprintf("Your report for %s has been locked by HR.", date.Format("January 2, 2006"))
	return s.Create(ctx, ownerID, TypeLock, "Report Locked", message, &reportID)
}

func (s *Service) ReportUnlocked(ctx context.Context, ownerID, reportID string, date time.Time) error {
	message := fmt.Sprintf("Your report for %s has been unlocked by HR. You can now edit it.", date.Format("January 2, 2006"))
	return s.Create(ctx, ownerID, TypeUnlock, "Report Unlocked", message, &reportID)
}

// FeedbackAdded notifies a report owner that someone commented.
func (s *Service) FeedbackAdded(ctx context.Context, ownerID, reportID, authorName string, date time.Time) error {
	message := fmt.Sprintf("%s commented on your report for %s.", authorName, date.Format("January 2, 2006"))
	return s.Create(ctx, ownerID, TypeFeedback, "New Feedback", message, &reportID)
}

// RemindMissingDaily notifies every staff user who has not filed a
// daily report inside the window. Returns the notified user ids.
func (s *Service) RemindMissingDaily(ctx context.Context, dayStart, dayEnd time.Time) ([]string, error) {
	missing, err := s.store.StaffMissingDaily(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	var notified []string
	for _, recipient := range missing {
		err := s.Create(ctx, recipient.ID, TypeReminder, "Daily Report Reminder",
			"You haven't submitted your daily report for today. Please submit it before the deadline.", nil)
		if err != nil {
			slog.Warn("daily reminder failed", "userId", recipient.ID, "err", err)
			continue
		}
		notified = append(notified, recipient.ID)
	}
	return notified, nil
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, int, error) {
	return s.store.ListNotifications(ctx, userID, unreadOnly, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, notificationID string) error {
	return s.store.DeleteNotification(ctx, userID, notificationID)
}
