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

var _ apiconnect.MeetingServiceHandler = (*MeetingService)(nil)

// MeetingService implements the MeetingService RPC interface.
type MeetingService struct {
	store storage.Store
}

// NewMeetingService creates a new MeetingService with the given storage backend.
func NewMeetingService(store storage.Store) *MeetingService {
	return &MeetingService{store: store}
}

// CreateMeeting creates a meeting owned by the caller, who becomes its first
// participant.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *connect.Request[api.CreateMeetingRequest]) (*connect.Response[api.CreateMeetingResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	scheduledAt, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateMeeting request received", "name", req.Msg.Name, "user_id", userID)

	meeting := &models.Meeting{
		Name:        req.Msg.Name,
		ScheduledAt: scheduledAt,
		OwnerID:     userID,
	}
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		if err := tx.CreateMeeting(ctx, meeting); err != nil {
			return err
		}
		return tx.CreateParticipant(ctx, &models.Participant{MeetingID: meeting.ID, UserID: userID})
	})
	if err != nil {
		slog.Error("CreateMeeting failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Meeting created", "meeting_id", meeting.ID)
	return connect.NewResponse(&api.CreateMeetingResponse{Meeting: meetingToAPI(meeting)}), nil
}

// ListMeetings returns every meeting with its participants.
func (s *MeetingService) ListMeetings(ctx context.Context, req *connect.Request[api.ListMeetingsRequest]) (*connect.Response[api.ListMeetingsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []*api.MeetingSummary
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		meetings, err := tx.ListMeetings(ctx)
		if err != nil {
			return err
		}
		summaries, err = summarize(ctx, tx, userID, meetings)
		return err
	})
	if err != nil {
		slog.Error("ListMeetings failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListMeetings successful", "count", len(summaries))
	return connect.NewResponse(&api.ListMeetingsResponse{Meetings: summaries}), nil
}

// GetMeeting returns one meeting with its participants.
func (s *MeetingService) GetMeeting(ctx context.Context, req *connect.Request[api.GetMeetingRequest]) (*connect.Response[api.GetMeetingResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var summary *api.MeetingSummary
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		meeting, err := getMeeting(ctx, tx, req.Msg.MeetingID)
		if err != nil {
			return err
		}
		summaries, err := summarize(ctx, tx, userID, []*models.Meeting{meeting})
		if err != nil {
			return err
		}
		summary = summaries[0]
		return nil
	})
	if err != nil {
		slog.Warn("GetMeeting failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMeetingResponse{Meeting: summary}), nil
}

// UpdateMeeting renames or reschedules a meeting. Owner only.
func (s *MeetingService) UpdateMeeting(ctx context.Context, req *connect.Request[api.UpdateMeetingRequest]) (*connect.Response[api.UpdateMeetingResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	update := storage.MeetingUpdate{Name: req.Msg.Name}
	if req.Msg.Date != nil {
		scheduledAt, err := parseDate(*req.Msg.Date)
		if err != nil {
			return nil, err
		}
		update.ScheduledAt = &scheduledAt
	}

	var meeting *models.Meeting
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		meeting, err = ownedMeeting(ctx, tx, req.Msg.MeetingID, userID, "update meeting")
		if err != nil {
			return err
		}
		if err := tx.UpdateMeeting(ctx, meeting.ID, update); err != nil {
			return err
		}
		meeting, err = tx.GetMeeting(ctx, meeting.ID)
		return err
	})
	if err != nil {
		slog.Warn("UpdateMeeting failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Meeting updated", "meeting_id", meeting.ID)
	return connect.NewResponse(&api.UpdateMeetingResponse{Meeting: meetingToAPI(meeting)}), nil
}

// DeleteMeetings deletes meetings together with their participants and
// feedback. Owner only. A meeting whose participants still have checks is
// refused, and then nothing is deleted.
func (s *MeetingService) DeleteMeetings(ctx context.Context, req *connect.Request[api.DeleteMeetingsRequest]) (*connect.Response[api.DeleteMeetingsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.Msg.MeetingIDs)
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		for _, id := range ids {
			if _, err := ownedMeeting(ctx, tx, id, userID, "delete meeting"); err != nil {
				return err
			}

			participants, err := tx.ListParticipants(ctx, storage.ParticipantFilter{MeetingID: id})
			if err != nil {
				return err
			}
			if err := refuseIfCharged(ctx, tx, participants); err != nil {
				return err
			}

			if _, err := tx.DeleteFeedback(ctx, storage.FeedbackFilter{MeetingID: id}); err != nil {
				return err
			}
			if _, err := tx.DeleteParticipants(ctx, storage.ParticipantFilter{MeetingID: id}); err != nil {
				return err
			}
			if err := tx.DeleteMeeting(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("DeleteMeetings failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Meetings deleted", "count", len(ids))
	return connect.NewResponse(&api.DeleteMeetingsResponse{Deleted: len(ids)}), nil
}

// summarize attaches participants and their names to each meeting.
func summarize(ctx context.Context, tx storage.Tx, callerID string, meetings []*models.Meeting) ([]*api.MeetingSummary, error) {
	byMeeting := make(map[string][]*models.Participant, len(meetings))
	var userIDs []string
	for _, m := range meetings {
		participants, err := tx.ListParticipants(ctx, storage.ParticipantFilter{MeetingID: m.ID})
		if err != nil {
			return nil, err
		}
		byMeeting[m.ID] = participants
		for _, p := range participants {
			userIDs = append(userIDs, p.UserID)
		}
	}

	users, err := tx.GetUsersByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}

	summaries := make([]*api.MeetingSummary, len(meetings))
	for i, m := range meetings {
		participants := make([]*api.Participant, len(byMeeting[m.ID]))
		for j, p := range byMeeting[m.ID] {
			participants[j] = participantToAPI(p, users)
		}
		summaries[i] = &api.MeetingSummary{
			Meeting:      meetingToAPI(m),
			Participants: participants,
			IsOwner:      m.OwnerID == callerID,
		}
	}
	return summaries, nil
}

func getMeeting(ctx context.Context, meetings storage.MeetingStore, id string) (*models.Meeting, error) {
	meeting, err := meetings.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, apperr.NotFound("meeting", id)
	}
	return meeting, nil
}

// ownedMeeting returns the meeting if userID owns it.
func ownedMeeting(ctx context.Context, meetings storage.MeetingStore, id, userID, action string) (*models.Meeting, error) {
	meeting, err := getMeeting(ctx, meetings, id)
	if err != nil {
		return nil, err
	}
	if meeting.OwnerID != userID {
		return nil, apperr.Forbidden(action)
	}
	return meeting, nil
}

// refuseIfCharged fails with a ConflictError if any of participants has a
// check. Participants with checks cannot be removed from a meeting.
func refuseIfCharged(ctx context.Context, checks storage.CheckStore, participants []*models.Participant) error {
	if len(participants) == 0 {
		return nil
	}

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	check, err := checks.GetCheck(ctx, storage.CheckFilter{ParticipantIDs: ids})
	if err != nil {
		return err
	}
	if check != nil {
		return apperr.Conflict("participant", "participant has unpaid checks")
	}
	return nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
