package compile

import "errors"

var (
	ErrNotFound  = errors.New("compiled report not found")
	ErrNoSources = errors.New("no source reports found for this period")
	ErrForbidden = errors.New("access denied")
)
