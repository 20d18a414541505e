package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const notificationColumns = `id, user_id, type, title, message, is_read, related_id, read_at, created_at`

func (s *Store) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()

	_, err := s.DB.Exec(ctx, `INSERT INTO notifications
		(id, user_id, type, title, message, is_read, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.CreatedAt)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, int, error) {
	where := ` WHERE user_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows, err := s.DB.Query(ctx, `SELECT `+notificationColumns+` FROM notifications`+where+
		` ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.RelatedID, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE, read_at = now()
		WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE, read_at = now()
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UserRecipient(ctx context.Context, userID string) (Recipient, error) {
	var r Recipient
	err := s.DB.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, userID).
		Scan(&r.ID, &r.Name, &r.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Recipient{}, ErrNotFound
	}
	if err != nil {
		return Recipient{}, fmt.Errorf("load recipient: %w", err)
	}
	return r, nil
}

func (s *Store) StaffMissingDaily(ctx context.Context, dayStart, dayEnd time.Time) ([]Recipient, error) {
	rows, err := s.DB.Query(ctx, `SELECT u.id, u.name, u.email FROM users u
		WHERE u.role = 'staff' AND u.is_active = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM reports r
			WHERE r.user_id = u.id AND r.type = 'daily' AND r.date >= $1 AND r.date <= $2
		)
		ORDER BY u.email ASC`, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load staff missing daily: %w", err)
	}
	defer rows.Close()

	var out []Recipient
	for rows.Next() {
		var r Recipient
		if err := rows.Scan(&r.ID, &r.Name, &r.Email); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
