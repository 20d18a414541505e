package comments

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateComment(ctx context.Context, c Comment) (Comment, error)
	GetComment(ctx context.Context, id string) (Comment, error)
	UpdateComment(ctx context.Context, id, content string) (Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// ListForReport returns top-level comments oldest first with their
	// replies attached.
	ListForReport(ctx context.Context, reportID string) ([]Comment, error)
	AuthorName(ctx context.Context, userID string) (string, error)
}

// ReportSource resolves the commented report's owner and date for the
// feedback notification.
type ReportSource interface {
	OwnerAndDate(ctx context.Context, reportID string) (ownerID string, date time.Time, err error)
}

// Notifier posts the feedback notification to the report owner.
type Notifier interface {
	FeedbackAdded(ctx context.Context, ownerID, reportID, authorName string, date time.Time) error
}
