// Package apperr defines the error kinds shared by the bill engine and the
// API layer. Each kind matches one of the sentinel errors through errors.Is,
// so callers can branch on the category without knowing the concrete type.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidGroup = errors.New("invalid charge group")
)

// NotFoundError reports a missing record of the given kind.
type NotFoundError struct {
	Kind string // "meeting", "item", "feedback", "check", "user", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParticipantNotFoundError reports a participant id that does not resolve
// inside the given meeting.
type ParticipantNotFoundError struct {
	ParticipantID string
	MeetingID     string
}

func (e *ParticipantNotFoundError) Error() string {
	return fmt.Sprintf("participant %s not found in meeting %s", e.ParticipantID, e.MeetingID)
}

func (e *ParticipantNotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a duplicate or a state that forbids the operation.
type ConflictError struct {
	Kind   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Kind, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// PermissionError reports a caller that may not perform Action.
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Action)
}

func (e *PermissionError) Is(target error) bool { return target == ErrPermission }

// InvalidGroupError reports an attempt to split across zero participants or
// a charge group whose rows disagree on quantity.
type InvalidGroupError struct {
	ItemID string
	Reason string
}

func (e *InvalidGroupError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("invalid charge group: %s", e.Reason)
	}
	return fmt.Sprintf("invalid charge group %s: %s", e.ItemID, e.Reason)
}

func (e *InvalidGroupError) Is(target error) bool { return target == ErrInvalidGroup }

// NotFound is a shorthand for &NotFoundError{Kind: kind, ID: id}.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Conflict is a shorthand for &ConflictError{Kind: kind, Reason: reason}.
func Conflict(kind, reason string) error {
	return &ConflictError{Kind: kind, Reason: reason}
}

// Forbidden is a shorthand for &PermissionError{Action: action}.
func Forbidden(action string) error {
	return &PermissionError{Action: action}
}
