// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/meetsplit/internal/models"
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns an error if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns nil, nil if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail returns nil, nil if no user has this email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to user.
	// Users that don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// UpdateUser applies the non-nil fields of update.
	UpdateUser(ctx context.Context, id string, update UserUpdate) error
}

// MeetingStore persists meetings.
type MeetingStore interface {
	// CreateMeeting persists a new meeting; ID and CreatedAt are filled in if empty.
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error

	// GetMeeting returns nil, nil if the meeting does not exist.
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)

	// ListMeetings returns all meetings ordered by scheduled time.
	ListMeetings(ctx context.Context) ([]*models.Meeting, error)

	// UpdateMeeting applies the non-nil fields of update.
	UpdateMeeting(ctx context.Context, id string, update MeetingUpdate) error

	// DeleteMeeting removes the meeting row only; participants and feedback
	// must be removed by the caller first.
	DeleteMeeting(ctx context.Context, id string) error
}

// ParticipantStore persists meeting memberships.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant returns the first participant matching filter, or nil, nil.
	GetParticipant(ctx context.Context, filter ParticipantFilter) (*models.Participant, error)

	ListParticipants(ctx context.Context, filter ParticipantFilter) ([]*models.Participant, error)

	// DeleteParticipants removes every participant matching filter.
	// An empty filter is rejected.
	DeleteParticipants(ctx context.Context, filter ParticipantFilter) (int64, error)
}

// FeedbackStore persists meeting feedback.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error

	// GetFeedback returns the first feedback matching filter, or nil, nil.
	GetFeedback(ctx context.Context, filter FeedbackFilter) (*models.Feedback, error)

	// ListMeetingFeedback returns the meeting's comments labelled with the
	// author's name.
	ListMeetingFeedback(ctx context.Context, meetingID string) ([]*models.FeedbackEntry, error)

	// ListUserFeedback returns the user's comments labelled with the
	// meeting's name.
	ListUserFeedback(ctx context.Context, userID string) ([]*models.FeedbackEntry, error)

	UpdateFeedback(ctx context.Context, id, comment string) error

	// DeleteFeedback removes every feedback matching filter.
	// An empty filter is rejected.
	DeleteFeedback(ctx context.Context, filter FeedbackFilter) (int64, error)
}

// ItemStore persists custom items.
type ItemStore interface {
	CreateCustomItem(ctx context.Context, item *models.CustomItem) error

	// GetCustomItem returns nil, nil if the item does not exist.
	GetCustomItem(ctx context.Context, id string) (*models.CustomItem, error)

	// UpdateCustomItem applies the non-nil fields of update.
	UpdateCustomItem(ctx context.Context, id string, update ItemUpdate) error

	DeleteCustomItem(ctx context.Context, id string) error
}

// CheckStore persists charge group rows.
type CheckStore interface {
	CreateCheck(ctx context.Context, check *models.Check) error

	// GetCheck returns the first check matching filter, or nil, nil.
	GetCheck(ctx context.Context, filter CheckFilter) (*models.Check, error)

	ListChecks(ctx context.Context, filter CheckFilter) ([]*models.Check, error)

	// UpdateChecks applies update to every check matching filter and returns
	// the updated rows. An empty filter is rejected.
	UpdateChecks(ctx context.Context, filter CheckFilter, update CheckUpdate) ([]*models.Check, error)

	// DeleteChecks removes every check matching filter.
	// An empty filter is rejected.
	DeleteChecks(ctx context.Context, filter CheckFilter) (int64, error)

	// ListStatementLines joins the participant's checks with their item names.
	ListStatementLines(ctx context.Context, participantID string) ([]models.StatementLine, error)
}

// Tx is the set of operations available inside a transaction.
type Tx interface {
	UserStore
	MeetingStore
	ParticipantStore
	FeedbackStore
	ItemStore
	CheckStore
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	Tx

	// WithTx runs fn inside a transaction. The transaction commits if fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
