package verification

import "errors"

var (
	// ErrAdNotFound — объявление не существует или принадлежит не вызывающему.
	// Чужим владельцам существование не раскрываем.
	ErrAdNotFound = errors.New("ad not found")
	// ErrRequestNotFound аналогично маскирует чужие заявки при отмене.
	ErrRequestNotFound  = errors.New("gold verification request not found")
	ErrNotVerified      = errors.New("must verify identity with OneID before requesting gold verification")
	ErrAlreadyPending   = errors.New("a gold verification request is already pending for this ad")
	ErrAlreadyProcessed = errors.New("this request has already been processed")
	ErrNotPending       = errors.New("only pending requests can be cancelled")
	ErrInvalidStatus    = errors.New("status must be approved or rejected")
)
