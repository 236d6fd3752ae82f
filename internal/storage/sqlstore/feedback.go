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

const feedbackColumns = `id, meeting_id, user_id, comment, created_at`

// CreateFeedback persists a new feedback comment.
func (s *SQLStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt == 0 {
		feedback.CreatedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`) VALUES (?, ?, ?, ?, ?)`,
		feedback.ID, feedback.MeetingID, feedback.UserID, feedback.Comment, feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	return nil
}

func feedbackConds(filter storage.FeedbackFilter) conds {
	var c conds
	c.eq("id", filter.ID)
	c.eq("meeting_id", filter.MeetingID)
	c.eq("user_id", filter.UserID)
	return c
}

// GetFeedback returns the first feedback matching filter.
func (s *SQLStore) GetFeedback(ctx context.Context, filter storage.FeedbackFilter) (*models.Feedback, error) {
	c := feedbackConds(filter)
	feedback := &models.Feedback{}
	err := s.get(ctx, feedback, `SELECT `+feedbackColumns+` FROM feedback`+c.where()+` LIMIT 1`, c.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedback, nil
}

// ListMeetingFeedback returns a meeting's comments with their authors' names.
func (s *SQLStore) ListMeetingFeedback(ctx context.Context, meetingID string) ([]*models.FeedbackEntry, error) {
	var entries []*models.FeedbackEntry
	err := s.selectAll(ctx, &entries, `
		SELECT f.id, f.comment, u.name AS label, f.created_at
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.meeting_id = ?
		ORDER BY f.created_at, f.id`,
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting feedback: %w", err)
	}

	return entries, nil
}

// ListUserFeedback returns a user's comments with the meetings' names.
func (s *SQLStore) ListUserFeedback(ctx context.Context, userID string) ([]*models.FeedbackEntry, error) {
	var entries []*models.FeedbackEntry
	err := s.selectAll(ctx, &entries, `
		SELECT f.id, f.comment, m.name AS label, f.created_at
		FROM feedback f
		JOIN meetings m ON m.id = f.meeting_id
		WHERE f.user_id = ?
		ORDER BY f.created_at, f.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user feedback: %w", err)
	}

	return entries, nil
}

// UpdateFeedback replaces the comment text.
func (s *SQLStore) UpdateFeedback(ctx context.Context, id, comment string) error {
	n, err := s.exec(ctx, "UPDATE feedback SET comment = ? WHERE id = ?", comment, id)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("feedback not found: %s", id)
	}

	return nil
}

// DeleteFeedback removes every feedback matching filter.
func (s *SQLStore) DeleteFeedback(ctx context.Context, filter storage.FeedbackFilter) (int64, error) {
	c := feedbackConds(filter)
	if c.empty() {
		return 0, fmt.Errorf("refusing to delete feedback without a filter")
	}

	n, err := s.exec(ctx, `DELETE FROM feedback`+c.where(), c.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete feedback: %w", err)
	}

	return n, nil
}
