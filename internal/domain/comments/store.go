package comments

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

const commentColumns = `c.id, c.report_id, c.user_id, u.name, c.content, c.parent_id, c.created_at, c.updated_at`

func (s *Store) CreateComment(ctx context.Context, c Comment) (Comment, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.DB.Exec(ctx, `INSERT INTO comments
		(id, report_id, user_id, content, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.ReportID, c.UserID, c.Content, c.ParentID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

func (s *Store) GetComment(ctx context.Context, id string) (Comment, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments c
		JOIN users u ON u.id = c.user_id WHERE c.id = $1`, id)

	var c Comment
	err := row.Scan(&c.ID, &c.ReportID, &c.UserID, &c.AuthorName, &c.Content, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	if err != nil {
		return Comment{}, fmt.Errorf("scan comment: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateComment(ctx context.Context, id, content string) (Comment, error) {
	tag, err := s.DB.Exec(ctx, `UPDATE comments SET content = $1, updated_at = now() WHERE id = $2`, content, id)
	if err != nil {
		return Comment{}, fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Comment{}, ErrNotFound
	}
	return s.GetComment(ctx, id)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	// Replies go with their parent.
	tag, err := s.DB.Exec(ctx, `DELETE FROM comments WHERE id = $1 OR parent_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListForReport(ctx context.Context, reportID string) ([]Comment, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+commentColumns+` FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.report_id = $1 ORDER BY c.created_at ASC`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var flat []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ReportID, &c.UserID, &c.AuthorName, &c.Content, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		flat = append(flat, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*Comment)
	var top []*Comment
	for i := range flat {
		c := flat[i]
		if c.ParentID == nil {
			byID[c.ID] = &c
			top = append(top, &c)
		}
	}
	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	out := make([]Comment, 0, len(top))
	for _, c := range top {
		out = append(out, *c)
	}
	return out, nil
}

func (s *Store) AuthorName(ctx context.Context, userID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load author name: %w", err)
	}
	return name, nil
}
