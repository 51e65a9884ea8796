package service

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-range input. Nothing is
	// persisted when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden means the entity exists but belongs to a different user.
	ErrForbidden = errors.New("forbidden")

	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrTemplateNotFound = errors.New("recurring template not found")
)
