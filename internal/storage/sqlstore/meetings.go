package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
)

const (
	meetingColumns     = `id, name, scheduled_at, owner_id, created_at`
	participantColumns = `id, meeting_id, user_id, joined_at`
)

// CreateMeeting persists a new meeting to the database.
func (s *SQLStore) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	// Generate IDs if not set
	if meeting.ID == "" {
		meeting.ID = uuid.New().String()
	}
	if meeting.CreatedAt == 0 {
		meeting.CreatedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx,
		`INSERT INTO meetings (`+meetingColumns+`) VALUES (?, ?, ?, ?, ?)`,
		meeting.ID, meeting.Name, meeting.ScheduledAt, meeting.OwnerID, meeting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}

	return nil
}

// GetMeeting retrieves a meeting by ID.
func (s *SQLStore) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	meeting := &models.Meeting{}
	err := s.get(ctx, meeting, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	return meeting, nil
}

// ListMeetings retrieves all meetings, soonest first.
func (s *SQLStore) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	err := s.selectAll(ctx, &meetings,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY scheduled_at, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	return meetings, nil
}

// UpdateMeeting applies the non-nil fields of update.
func (s *SQLStore) UpdateMeeting(ctx context.Context, id string, update storage.MeetingUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var set sets
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.ScheduledAt != nil {
		set.add("scheduled_at", *update.ScheduledAt)
	}

	args := append(set.args, id)
	n, err := s.exec(ctx, `UPDATE meetings SET `+set.clause()+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meeting not found: %s", id)
	}

	return nil
}

// DeleteMeeting removes a meeting by ID.
func (s *SQLStore) DeleteMeeting(ctx context.Context, id string) error {
	n, err := s.exec(ctx, "DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meeting not found: %s", id)
	}

	return nil
}

// CreateParticipant adds a user to a meeting.
func (s *SQLStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.JoinedAt == 0 {
		participant.JoinedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx,
		`INSERT INTO participants (`+participantColumns+`) VALUES (?, ?, ?, ?)`,
		participant.ID, participant.MeetingID, participant.UserID, participant.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	return nil
}

func participantConds(filter storage.ParticipantFilter) conds {
	var c conds
	c.eq("id", filter.ID)
	c.eq("meeting_id", filter.MeetingID)
	c.eq("user_id", filter.UserID)
	return c
}

// GetParticipant returns the first participant matching filter.
func (s *SQLStore) GetParticipant(ctx context.Context, filter storage.ParticipantFilter) (*models.Participant, error) {
	c := participantConds(filter)
	participant := &models.Participant{}
	err := s.get(ctx, participant,
		`SELECT `+participantColumns+` FROM participants`+c.where()+` LIMIT 1`, c.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// ListParticipants returns every participant matching filter.
func (s *SQLStore) ListParticipants(ctx context.Context, filter storage.ParticipantFilter) ([]*models.Participant, error) {
	c := participantConds(filter)
	var participants []*models.Participant
	err := s.selectAll(ctx, &participants,
		`SELECT `+participantColumns+` FROM participants`+c.where()+` ORDER BY joined_at, id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return participants, nil
}

// DeleteParticipants removes every participant matching filter.
func (s *SQLStore) DeleteParticipants(ctx context.Context, filter storage.ParticipantFilter) (int64, error) {
	c := participantConds(filter)
	if c.empty() {
		return 0, fmt.Errorf("refusing to delete participants without a filter")
	}

	n, err := s.exec(ctx, `DELETE FROM participants`+c.where(), c.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete participants: %w", err)
	}

	return n, nil
}
