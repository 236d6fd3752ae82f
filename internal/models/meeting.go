package models

// Meeting is a scheduled get-together. Its owner is always a participant.
type Meeting struct {
	// ID is the unique identifier for the meeting (UUID format).
	ID string `db:"id"`

	// Name is the display name (e.g., "Friday BBQ").
	Name string `db:"name"`

	// ScheduledAt is the Unix timestamp of the activity.
	ScheduledAt int64 `db:"scheduled_at"`

	// OwnerID is the user who created the meeting. Only the owner may edit,
	// delete or manage the participant list.
	OwnerID string `db:"owner_id"`

	// CreatedAt is the Unix timestamp when the meeting was created.
	CreatedAt int64 `db:"created_at"`
}

// Participant is one user's membership in one meeting.
// A user joins a given meeting at most once.
type Participant struct {
	ID        string `db:"id"`
	MeetingID string `db:"meeting_id"`
	UserID    string `db:"user_id"`
	JoinedAt  int64  `db:"joined_at"`
}

// Feedback is a participant's comment about a meeting.
// Each user may leave one comment per meeting.
type Feedback struct {
	ID        string `db:"id"`
	MeetingID string `db:"meeting_id"`
	UserID    string `db:"user_id"`
	Comment   string `db:"comment"`
	CreatedAt int64  `db:"created_at"`
}

// FeedbackEntry is a comment joined with a display label: the author's name
// when listing a meeting's feedback, the meeting's name when listing a user's.
type FeedbackEntry struct {
	FeedbackID string `db:"id"`
	Comment    string `db:"comment"`
	Label      string `db:"label"`
	CreatedAt  int64  `db:"created_at"`
}
