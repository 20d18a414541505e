package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	created []Notification
	missing []Recipient
	users   map[string]Recipient
}

func (f *fakeStore) CreateNotification(_ context.Context, n Notification) (Notification, error) {
	n.ID = "n1"
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeStore) ListNotifications(context.Context, string, bool, int, int) ([]Notification, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeStore) CountUnread(context.Context, string) (int, error) { return 0, nil }

func (f *fakeStore) MarkRead(context.Context, string, string) error { return nil }

func (f *fakeStore) MarkAllRead(context.Context, string) error { return nil }

func (f *fakeStore) DeleteNotification(context.Context, string, string) error { return nil }

func (f *fakeStore) UserRecipient(_ context.Context, userID string) (Recipient, error) {
	r, ok := f.users[userID]
	if !ok {
		return Recipient{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) StaffMissingDaily(context.Context, time.Time, time.Time) ([]Recipient, error) {
	return f.missing, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, _, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestReportLockedMessage(t *testing.T) {
	store := &fakeStore{users: map[string]Recipient{}}
	svc := New(store, nil)

	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if err := svc.ReportLocked(context.Background(), "u1", "r1", date); err != nil {
		t.Fatalf("ReportLocked: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(store.created))
	}
	n := store.created[0]
	if n.Type != TypeLock {
		t.Errorf("type = %q, want %q", n.Type, TypeLock)
	}
	if want := "Your report for March 4, 2024 has been locked by HR."; n.Message != want {
		t.Errorf("message = %q, want %q", n.Message, want)
	}
	if n.RelatedID == nil || *n.RelatedID != "r1" {
		t.Errorf("relatedId = %v, want r1", n.RelatedID)
	}
}

func TestRemindMissingDailySendsEmail(t *testing.T) {
	store := &fakeStore{
		missing: []Recipient{
			{ID: "u1", Name: "Alice", Email: "alice@example.com"},
			{ID: "u2", Name: "Bob", Email: "bob@example.com"},
		},
		users: map[string]Recipient{
			"u1": {ID: "u1", Email: "alice@example.com"},
			"u2": {ID: "u2", Email: "bob@example.com"},
		},
	}
	mailer := &fakeMailer{}
	svc := New(store, mailer)

	notified, err := svc.RemindMissingDaily(context.Background(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("RemindMissingDaily: %v", err)
	}
	if len(notified) != 2 {
		t.Fatalf("notified %v, want 2 users", notified)
	}
	if len(store.created) != 2 {
		t.Errorf("created %d notifications, want 2", len(store.created))
	}
	if len(mailer.sent) != 2 {
		t.Errorf("sent %d emails, want 2", len(mailer.sent))
	}
}

func TestCreateSwallowsMailerFailure(t *testing.T) {
	store := &fakeStore{users: map[string]Recipient{"u1": {ID: "u1", Email: "alice@example.com"}}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := New(store, mailer)

	if err := svc.Create(context.Background(), "u1", TypeSystem, "Hello", "body", nil); err != nil {
		t.Fatalf("Create returned mailer error: %v", err)
	}
	if len(store.created) != 1 {
		t.Errorf("created %d notifications, want 1", len(store.created))
	}
}
