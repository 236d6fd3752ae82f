package storage

import "github.com/shopspring/decimal"

// ParticipantFilter selects participants. Empty fields are ignored; set
// fields are combined with AND.
type ParticipantFilter struct {
	ID        string
	MeetingID string
	UserID    string
}

// IsEmpty reports whether no field is set.
func (f ParticipantFilter) IsEmpty() bool {
	return f.ID == "" && f.MeetingID == "" && f.UserID == ""
}

// FeedbackFilter selects feedback. Empty fields are ignored.
type FeedbackFilter struct {
	ID        string
	MeetingID string
	UserID    string
}

// IsEmpty reports whether no field is set.
func (f FeedbackFilter) IsEmpty() bool {
	return f.ID == "" && f.MeetingID == "" && f.UserID == ""
}

// CheckFilter selects checks. Empty fields are ignored.
// ParticipantIDs, when non-empty, restricts to those participants.
type CheckFilter struct {
	ID             string
	CustomItemID   string
	ParticipantID  string
	ParticipantIDs []string
}

// IsEmpty reports whether no field is set.
func (f CheckFilter) IsEmpty() bool {
	return f.ID == "" && f.CustomItemID == "" && f.ParticipantID == "" && len(f.ParticipantIDs) == 0
}

// CheckUpdate lists the check columns to change. Nil fields are left as is.
type CheckUpdate struct {
	SplitAmount *decimal.Decimal
	Quantity    *decimal.Decimal
}

// IsEmpty reports whether the update changes nothing.
func (u CheckUpdate) IsEmpty() bool {
	return u.SplitAmount == nil && u.Quantity == nil
}

// ItemUpdate lists the custom item columns to change.
type ItemUpdate struct {
	Name  *string
	Price *decimal.Decimal
}

// IsEmpty reports whether the update changes nothing.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil
}

// MeetingUpdate lists the meeting columns to change.
type MeetingUpdate struct {
	Name        *string
	ScheduledAt *int64
}

// IsEmpty reports whether the update changes nothing.
func (u MeetingUpdate) IsEmpty() bool {
	return u.Name == nil && u.ScheduledAt == nil
}

// UserUpdate lists the user columns to change.
type UserUpdate struct {
	Name         *string
	Lastname     *string
	Email        *string
	PasswordHash *string
	Status       *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Lastname == nil && u.Email == nil && u.PasswordHash == nil && u.Status == nil
}
