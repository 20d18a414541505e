package comments

import (
	"context"
	"log/slog"
	"strings"

	"reportdesk/internal/domain/auth"
)

type Service struct {
	store    StoreAPI
	reports  ReportSource
	notifier Notifier
}

func NewService(store StoreAPI, reports ReportSource, notifier Notifier) *Service {
	return &Service{store: store, reports: reports, notifier: notifier}
}

// Create adds a comment or reply and notifies the report owner unless
// they are commenting on their own report. The notification is
// best-effort.
func (s *Service) Create(ctx context.Context, actor auth.UserContext, reportID, content string, parentID *string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, ErrEmptyContent
	}
	ownerID, date, err := s.reports.OwnerAndDate(ctx, reportID)
	if err != nil {
		return Comment{}, ErrReportMissing
	}
	if parentID != nil {
		parent, err := s.store.GetComment(ctx, *parentID)
		if err != nil {
			return Comment{}, err
		}
		if parent.ParentID != nil {
			return Comment{}, ErrNestedReply
		}
	}

	comment, err := s.store.CreateComment(ctx, Comment{
		ReportID: reportID,
		UserID:   actor.UserID,
		Content:  content,
		ParentID: parentID,
	})
	if err != nil {
		return Comment{}, err
	}

	if s.notifier != nil && ownerID != actor.UserID {
		authorName, err := s.store.AuthorName(ctx, actor.UserID)
		if err != nil {
			slog.Warn("comment author lookup failed", "userId", actor.UserID, "err", err)
			authorName = "Someone"
		}
		if err := s.notifier.FeedbackAdded(ctx, ownerID, reportID, authorName, date); err != nil {
			slog.Warn("feedback notification failed", "reportId", reportID, "err", err)
		}
	}
	return comment, nil
}

// Update edits a comment's content. Only the author or a user with
// role >= hr may edit.
func (s *Service) Update(ctx context.Context, actor auth.UserContext, id, content string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, ErrEmptyContent
	}
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	if comment.UserID != actor.UserID && !auth.AtLeast(actor.Role, auth.RoleHR) {
		return Comment{}, ErrNotAuthor
	}
	return s.store.UpdateComment(ctx, id, content)
}

func (s *Service) Delete(ctx context.Context, actor auth.UserContext, id string) error {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.UserID && !auth.AtLeast(actor.Role, auth.RoleHR) {
		return ErrNotAuthor
	}
	return s.store.DeleteComment(ctx, id)
}

func (s *Service) ListForReport(ctx context.Context, reportID string) ([]Comment, error) {
	return s.store.ListForReport(ctx, reportID)
}
