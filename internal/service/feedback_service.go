package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
	"github.com/mmynk/meetsplit/pkg/api"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

var _ apiconnect.FeedbackServiceHandler = (*FeedbackService)(nil)

// FeedbackService stores participants' comments about meetings.
type FeedbackService struct {
	store storage.Store
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store storage.Store) *FeedbackService {
	return &FeedbackService{store: store}
}

// CreateFeedback leaves the caller's comment on a meeting they attended.
// The owner cannot comment on their own meeting.
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *connect.Request[api.CreateFeedbackRequest]) (*connect.Response[api.CreateFeedbackResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		MeetingID: req.Msg.MeetingID,
		UserID:    userID,
		Comment:   req.Msg.Comment,
	}
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		meeting, err := getMeeting(ctx, tx, req.Msg.MeetingID)
		if err != nil {
			return err
		}
		if meeting.OwnerID == userID {
			return apperr.Forbidden("comment on your own meeting")
		}

		p, err := tx.GetParticipant(ctx, storage.ParticipantFilter{MeetingID: meeting.ID, UserID: userID})
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.Forbidden("comment on a meeting you did not attend")
		}

		existing, err := tx.GetFeedback(ctx, storage.FeedbackFilter{MeetingID: meeting.ID, UserID: userID})
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("feedback", "only one comment per meeting")
		}

		return tx.CreateFeedback(ctx, feedback)
	})
	if err != nil {
		slog.Warn("CreateFeedback failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Feedback created", "meeting_id", feedback.MeetingID, "feedback_id", feedback.ID)
	return connect.NewResponse(&api.CreateFeedbackResponse{Feedback: feedbackToAPI(feedback)}), nil
}

// UpdateFeedback replaces the comment. Author only.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, req *connect.Request[api.UpdateFeedbackRequest]) (*connect.Response[api.UpdateFeedbackResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var feedback *models.Feedback
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		feedback, err = ownFeedback(ctx, tx, req.Msg.FeedbackID, userID, "edit someone else's feedback")
		if err != nil {
			return err
		}
		if err := tx.UpdateFeedback(ctx, feedback.ID, req.Msg.Comment); err != nil {
			return err
		}
		feedback.Comment = req.Msg.Comment
		return nil
	})
	if err != nil {
		slog.Warn("UpdateFeedback failed", "feedback_id", req.Msg.FeedbackID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateFeedbackResponse{Feedback: feedbackToAPI(feedback)}), nil
}

// DeleteFeedback removes the comment. Author only.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, req *connect.Request[api.DeleteFeedbackRequest]) (*connect.Response[api.DeleteFeedbackResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		feedback, err := ownFeedback(ctx, tx, req.Msg.FeedbackID, userID, "delete someone else's feedback")
		if err != nil {
			return err
		}
		_, err = tx.DeleteFeedback(ctx, storage.FeedbackFilter{ID: feedback.ID})
		return err
	})
	if err != nil {
		slog.Warn("DeleteFeedback failed", "feedback_id", req.Msg.FeedbackID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Feedback deleted", "feedback_id", req.Msg.FeedbackID)
	return connect.NewResponse(&api.DeleteFeedbackResponse{}), nil
}

// ListMeetingFeedback returns a meeting's comments labelled with their
// authors' names.
func (s *FeedbackService) ListMeetingFeedback(ctx context.Context, req *connect.Request[api.ListMeetingFeedbackRequest]) (*connect.Response[api.ListMeetingFeedbackResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var entries []*models.FeedbackEntry
	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		if _, err := getMeeting(ctx, tx, req.Msg.MeetingID); err != nil {
			return err
		}
		var err error
		entries, err = tx.ListMeetingFeedback(ctx, req.Msg.MeetingID)
		return err
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMeetingFeedbackResponse{Entries: feedbackEntriesToAPI(entries)}), nil
}

// ListMyFeedback returns the caller's comments labelled with the meetings'
// names.
func (s *FeedbackService) ListMyFeedback(ctx context.Context, req *connect.Request[api.ListMyFeedbackRequest]) (*connect.Response[api.ListMyFeedbackResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.ListUserFeedback(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMyFeedbackResponse{Entries: feedbackEntriesToAPI(entries)}), nil
}

func ownFeedback(ctx context.Context, tx storage.Tx, id, userID, action string) (*models.Feedback, error) {
	feedback, err := tx.GetFeedback(ctx, storage.FeedbackFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, apperr.NotFound("feedback", id)
	}
	if feedback.UserID != userID {
		return nil, apperr.Forbidden(action)
	}
	return feedback, nil
}
