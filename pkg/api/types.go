// Package api defines the request, response and resource messages exchanged
// by the meetsplit RPC services. Messages are plain structs encoded as JSON;
// the validate tags are checked by the services before a request is used.
package api

import "github.com/shopspring/decimal"

// User is the public view of an account. The password hash is never sent.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// Meeting is a scheduled get-together.
type Meeting struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // RFC 3339
	OwnerID   string `json:"owner_id"`
	CreatedAt int64  `json:"created_at"`
}

// MeetingSummary is a meeting together with its participants, as seen by
// the caller.
type MeetingSummary struct {
	Meeting      *Meeting       `json:"meeting"`
	Participants []*Participant `json:"participants"`
	IsOwner      bool           `json:"is_owner"`
}

// Participant is one user's membership in a meeting.
type Participant struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty"`
}

// Feedback is a participant's comment about a meeting.
type Feedback struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	UserID    string `json:"user_id"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

// FeedbackEntry is a comment with a label: the author's name in a meeting's
// listing, the meeting's name in the caller's own listing.
type FeedbackEntry struct {
	ID        string `json:"id"`
	Comment   string `json:"comment"`
	Label     string `json:"label"`
	CreatedAt int64  `json:"created_at"`
}

// Item is a purchased custom item.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Check is one participant's share of an item.
type Check struct {
	ID            string          `json:"id"`
	ParticipantID string          `json:"participant_id"`
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	SplitAmount   decimal.Decimal `json:"split_amount"`
}

// StatementLine is one item on a participant's statement.
type StatementLine struct {
	ItemName    string          `json:"item_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	SplitAmount decimal.Decimal `json:"split_amount"`
}

// Statement lists what one participant owes.
type Statement struct {
	ParticipantID string           `json:"participant_id"`
	Name          string           `json:"name,omitempty"`
	Lines         []*StatementLine `json:"lines"`
	Total         decimal.Decimal  `json:"total"`
}
