package comments

import "time"

// Comment supports one level of threading: replies carry the parent
// comment id and are never parents themselves.
type Comment struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"reportId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	ParentID   *string   `json:"parentId,omitempty"`
	Replies    []Comment `json:"replies,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
