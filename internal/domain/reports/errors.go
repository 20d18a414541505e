package reports

import "errors"

var (
	ErrNotFound       = errors.New("report not found")
	ErrLocked         = errors.New("report is locked")
	ErrNotOwner       = errors.New("you can only act on your own reports")
	ErrRoleDenied     = errors.New("insufficient role")
	ErrNotDraft       = errors.New("only draft reports can be deleted")
	ErrDuplicateDaily = errors.New("a daily report already exists for this date")
	ErrInvalidType    = errors.New("unknown report type")
)
