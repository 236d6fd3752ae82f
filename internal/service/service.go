// Package service implements the meetsplit Connect services on top of the
// store and the bill engine.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/auth"
	"github.com/mmynk/meetsplit/internal/middleware"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/pkg/api"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

// PublicProcedures can be called without an access token.
var PublicProcedures = []string{
	apiconnect.UserServiceRegisterProcedure,
	apiconnect.UserServiceActivateProcedure,
	apiconnect.UserServiceLoginProcedure,
}

var validate = validator.New()

// validateRequest checks msg's validate tags.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// callerID returns the authenticated user's id.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// toConnectError maps domain errors to Connect codes. Unclassified errors are
// logged and reported as internal.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, apperr.ErrPermission):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, apperr.ErrInvalidGroup), errors.Is(err, auth.ErrAccountInactive):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, auth.ErrInvalidPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	slog.Error("Unexpected error", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

// parseDate parses an RFC 3339 timestamp into Unix seconds.
func parseDate(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, invalidArgument("date must be an RFC 3339 timestamp")
	}
	return t.Unix(), nil
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func meetingToAPI(m *models.Meeting) *api.Meeting {
	return &api.Meeting{
		ID:        m.ID,
		Name:      m.Name,
		Date:      formatDate(m.ScheduledAt),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}

// participantToAPI labels p with its user's name when users has it.
func participantToAPI(p *models.Participant, users map[string]*models.User) *api.Participant {
	out := &api.Participant{
		ID:        p.ID,
		MeetingID: p.MeetingID,
		UserID:    p.UserID,
	}
	if u, ok := users[p.UserID]; ok {
		out.Name = u.Name
	}
	return out
}

func feedbackToAPI(f *models.Feedback) *api.Feedback {
	return &api.Feedback{
		ID:        f.ID,
		MeetingID: f.MeetingID,
		UserID:    f.UserID,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func feedbackEntriesToAPI(entries []*models.FeedbackEntry) []*api.FeedbackEntry {
	out := make([]*api.FeedbackEntry, len(entries))
	for i, e := range entries {
		out[i] = &api.FeedbackEntry{
			ID:        e.FeedbackID,
			Comment:   e.Comment,
			Label:     e.Label,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}

func itemToAPI(item *models.CustomItem) *api.Item {
	return &api.Item{ID: item.ID, Name: item.Name, Price: item.Price}
}

func checksToAPI(checks []*models.Check) []*api.Check {
	out := make([]*api.Check, len(checks))
	for i, c := range checks {
		out[i] = &api.Check{
			ID:            c.ID,
			ParticipantID: c.ParticipantID,
			ItemID:        c.CustomItemID,
			Quantity:      c.Quantity,
			SplitAmount:   c.SplitAmount,
		}
	}
	return out
}
