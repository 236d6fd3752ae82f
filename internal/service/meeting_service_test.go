package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/meetsplit/pkg/api"
)

func TestCreateMeeting(t *testing.T) {
	env := setupTestServer(t)
	alice := env.signIn(t, "alice")

	meeting := alice.createMeeting(t, "Friday BBQ")
	assert.NotEmpty(t, meeting.ID)
	assert.Equal(t, "Friday BBQ", meeting.Name)
	assert.Equal(t, "2025-06-01T18:00:00Z", meeting.Date)
	assert.Equal(t, alice.user.ID, meeting.OwnerID)

	resp, err := alice.meetings.GetMeeting(context.Background(), connect.NewRequest(&api.GetMeetingRequest{MeetingID: meeting.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Meeting.Participants, 1, "owner is the first participant")
	assert.Equal(t, alice.user.ID, resp.Msg.Meeting.Participants[0].UserID)
	assert.Equal(t, "alice", resp.Msg.Meeting.Participants[0].Name)
	assert.True(t, resp.Msg.Meeting.IsOwner)
}

func TestCreateMeetingValidation(t *testing.T) {
	env := setupTestServer(t)
	alice := env.signIn(t, "alice")

	tests := []struct {
		name string
		req  *api.CreateMeetingRequest
	}{
		{"missing name", &api.CreateMeetingRequest{Date: "2025-06-01T18:00:00Z"}},
		{"missing date", &api.CreateMeetingRequest{Name: "BBQ"}},
		{"bad date", &api.CreateMeetingRequest{Name: "BBQ", Date: "next friday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.meetings.CreateMeeting(context.Background(), connect.NewRequest(tt.req))
			requireCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestListMeetings(t *testing.T) {
	env := setupTestServer(t)
	alice := env.signIn(t, "alice")
	bob := env.signIn(t, "bob")

	first := alice.createMeeting(t, "Dinner")
	bob.join(t, first.ID)
	bob.createMeeting(t, "Lunch")

	resp, err := alice.meetings.ListMeetings(context.Background(), connect.NewRequest(&api.ListMeetingsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Meetings, 2)

	byName := make(map[string]*api.MeetingSummary)
	for _, m := range resp.Msg.Meetings {
		byName[m.Meeting.Name] = m
	}
	assert.True(t, byName["Dinner"].IsOwner)
	assert.False(t, byName["Lunch"].IsOwner)
	assert.Len(t, byName["Dinner"].Participants, 2)
	assert.Len(t, byName["Lunch"].Participants, 1)
}

func TestUpdateMeeting(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signIn(t, "alice")
	bob := env.signIn(t, "bob")
	meeting := alice.createMeeting(t, "Dinner")

	resp, err := alice.meetings.UpdateMeeting(ctx, connect.NewRequest(&api.UpdateMeetingRequest{
		MeetingID: meeting.ID,
		Name:      ptr("Late dinner"),
		Date:      ptr("2025-06-01T21:30:00+02:00"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "Late dinner", resp.Msg.Meeting.Name)
	assert.Equal(t, "2025-06-01T19:30:00Z", resp.Msg.Meeting.Date)

	t.Run("not the owner", func(t *testing.T) {
		_, err := bob.meetings.UpdateMeeting(ctx, connect.NewRequest(&api.UpdateMeetingRequest{
			MeetingID: meeting.ID,
			Name:      ptr("Hijacked"),
		}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		_, err := alice.meetings.UpdateMeeting(ctx, connect.NewRequest(&api.UpdateMeetingRequest{
			MeetingID: "missing",
			Name:      ptr("x"),
		}))
		requireCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteMeetings(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signIn(t, "alice")
	bob := env.signIn(t, "bob")

	meeting := alice.createMeeting(t, "Dinner")
	bob.join(t, meeting.ID)
	_, err := bob.feedback.CreateFeedback(ctx, connect.NewRequest(&api.CreateFeedbackRequest{
		MeetingID: meeting.ID,
		Comment:   "Great food",
	}))
	require.NoError(t, err)

	purchase, err := alice.checks.CreatePurchase(ctx, connect.NewRequest(&api.CreatePurchaseRequest{
		MeetingID: meeting.ID,
		ItemName:  "Pizza",
		Price:     decimal.NewFromInt(20),
		Quantity:  decimal.NewFromInt(1),
	}))
	require.NoError(t, err)

	deleteReq := func() *connect.Request[api.DeleteMeetingsRequest] {
		return connect.NewRequest(&api.DeleteMeetingsRequest{MeetingIDs: []string{meeting.ID}})
	}

	t.Run("not the owner", func(t *testing.T) {
		_, err := bob.meetings.DeleteMeetings(ctx, deleteReq())
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("refused while checks exist", func(t *testing.T) {
		_, err := alice.meetings.DeleteMeetings(ctx, deleteReq())
		requireCode(t, err, connect.CodeAlreadyExists)
	})

	_, err = alice.checks.DeletePurchase(ctx, connect.NewRequest(&api.DeletePurchaseRequest{
		MeetingID: meeting.ID,
		ItemID:    purchase.Msg.Item.ID,
	}))
	require.NoError(t, err)

	resp, err := alice.meetings.DeleteMeetings(ctx, deleteReq())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Msg.Deleted)

	_, err = alice.meetings.GetMeeting(ctx, connect.NewRequest(&api.GetMeetingRequest{MeetingID: meeting.ID}))
	requireCode(t, err, connect.CodeNotFound)

	mine, err := bob.feedback.ListMyFeedback(ctx, connect.NewRequest(&api.ListMyFeedbackRequest{}))
	require.NoError(t, err)
	assert.Empty(t, mine.Msg.Entries)
}
