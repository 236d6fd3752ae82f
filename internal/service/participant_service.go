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

var _ apiconnect.ParticipantServiceHandler = (*ParticipantService)(nil)

// ParticipantService manages who attends a meeting.
type ParticipantService struct {
	store storage.Store
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(store storage.Store) *ParticipantService {
	return &ParticipantService{store: store}
}

// AddParticipants adds users to a meeting. Owner only.
func (s *ParticipantService) AddParticipants(ctx context.Context, req *connect.Request[api.AddParticipantsRequest]) (*connect.Response[api.AddParticipantsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	slog.Info("AddParticipants request received", "meeting_id", req.Msg.MeetingID, "count", len(req.Msg.UserIDs))

	userIDs := uniqueIDs(req.Msg.UserIDs)
	var added []*api.Participant
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		if _, err := ownedMeeting(ctx, tx, req.Msg.MeetingID, userID, "add participants"); err != nil {
			return err
		}

		users, err := tx.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return err
		}

		for _, id := range userIDs {
			if _, ok := users[id]; !ok {
				return apperr.NotFound("user", id)
			}
			p, err := join(ctx, tx, req.Msg.MeetingID, id)
			if err != nil {
				return err
			}
			added = append(added, participantToAPI(p, users))
		}
		return nil
	})
	if err != nil {
		slog.Warn("AddParticipants failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Participants added", "meeting_id", req.Msg.MeetingID, "count", len(added))
	return connect.NewResponse(&api.AddParticipantsResponse{Participants: added}), nil
}

// JoinMeetings makes the caller a participant of each meeting.
func (s *ParticipantService) JoinMeetings(ctx context.Context, req *connect.Request[api.JoinMeetingsRequest]) (*connect.Response[api.JoinMeetingsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var joined []*api.Participant
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		for _, id := range uniqueIDs(req.Msg.MeetingIDs) {
			meeting, err := getMeeting(ctx, tx, id)
			if err != nil {
				return err
			}
			if meeting.OwnerID == userID {
				return apperr.Forbidden("join your own meeting")
			}

			p, err := join(ctx, tx, id, userID)
			if err != nil {
				return err
			}
			joined = append(joined, participantToAPI(p, nil))
		}
		return nil
	})
	if err != nil {
		slog.Warn("JoinMeetings failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Meetings joined", "user_id", userID, "count", len(joined))
	return connect.NewResponse(&api.JoinMeetingsResponse{Participants: joined}), nil
}

// LeaveMeetings removes the caller from each meeting. The owner cannot
// leave, and nobody can leave while charged for an item.
func (s *ParticipantService) LeaveMeetings(ctx context.Context, req *connect.Request[api.LeaveMeetingsRequest]) (*connect.Response[api.LeaveMeetingsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		for _, id := range uniqueIDs(req.Msg.MeetingIDs) {
			meeting, err := getMeeting(ctx, tx, id)
			if err != nil {
				return err
			}
			if meeting.OwnerID == userID {
				return apperr.Forbidden("leave your own meeting")
			}
			if err := removeParticipant(ctx, tx, id, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("LeaveMeetings failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.LeaveMeetingsResponse{}), nil
}

// RemoveParticipants removes users from a meeting. Owner only.
func (s *ParticipantService) RemoveParticipants(ctx context.Context, req *connect.Request[api.RemoveParticipantsRequest]) (*connect.Response[api.RemoveParticipantsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	userIDs := uniqueIDs(req.Msg.UserIDs)
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		if _, err := ownedMeeting(ctx, tx, req.Msg.MeetingID, userID, "remove participants"); err != nil {
			return err
		}
		for _, id := range userIDs {
			if id == userID {
				return apperr.Forbidden("remove the meeting owner")
			}
			if err := removeParticipant(ctx, tx, req.Msg.MeetingID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("RemoveParticipants failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Participants removed", "meeting_id", req.Msg.MeetingID, "count", len(userIDs))
	return connect.NewResponse(&api.RemoveParticipantsResponse{Removed: int64(len(userIDs))}), nil
}

// join adds userID to the meeting unless already there.
func join(ctx context.Context, tx storage.Tx, meetingID, userID string) (*models.Participant, error) {
	existing, err := tx.GetParticipant(ctx, storage.ParticipantFilter{MeetingID: meetingID, UserID: userID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("participant", "user already takes part in the meeting")
	}

	p := &models.Participant{MeetingID: meetingID, UserID: userID}
	if err := tx.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// removeParticipant deletes userID's membership, refusing while it is
// referenced by checks.
func removeParticipant(ctx context.Context, tx storage.Tx, meetingID, userID string) error {
	p, err := tx.GetParticipant(ctx, storage.ParticipantFilter{MeetingID: meetingID, UserID: userID})
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("participant", userID)
	}
	if err := refuseIfCharged(ctx, tx, []*models.Participant{p}); err != nil {
		return err
	}

	_, err = tx.DeleteParticipants(ctx, storage.ParticipantFilter{ID: p.ID})
	return err
}
