package domain

import "errors"

var (
	ErrUnknownType          = errors.New("unknown notification type")
	ErrMissingRecipient     = errors.New("recipient is required")
	ErrMissingTitle         = errors.New("title is required")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
)
