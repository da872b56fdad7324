package application

import "errors"

var (
	ErrIssueNotFound        = errors.New("issue not found")
	ErrAgendaNotFound       = errors.New("meeting agenda not found")
	ErrArchiveNotFound      = errors.New("archive entry not found")
	ErrForbidden            = errors.New("actor is not allowed to perform this change")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrAgendaSettled        = errors.New("meeting agenda already settled")
	ErrPersistence          = errors.New("backend rejected the change")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
)
