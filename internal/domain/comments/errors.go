package comments

import "errors"

var (
	ErrNotFound      = errors.New("comment not found")
	ErrNotAuthor     = errors.New("not the comment author")
	ErrNestedReply   = errors.New("replies cannot be nested")
	ErrEmptyContent  = errors.New("comment content is empty")
	ErrReportMissing = errors.New("report not found")
)
