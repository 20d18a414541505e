package notifications

const (
	TypeReminder = "reminder"
	TypeFeedback = "feedback"
	TypeLock     = "lock"
	TypeUnlock   = "unlock"
	TypeDeadline = "deadline"
	TypeSystem   = "system"
)
