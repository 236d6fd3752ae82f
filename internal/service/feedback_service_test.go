package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/meetsplit/pkg/api"
)

func TestFeedback(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.signIn(t, "alice")
	bob := env.signIn(t, "bob")
	carol := env.signIn(t, "carol")
	meeting := alice.createMeeting(t, "Dinner")
	bob.join(t, meeting.ID)

	createReq := func(comment string) *connect.Request[api.CreateFeedbackRequest] {
		return connect.NewRequest(&api.CreateFeedbackRequest{MeetingID: meeting.ID, Comment: comment})
	}

	t.Run("owner cannot comment", func(t *testing.T) {
		_, err := alice.feedback.CreateFeedback(ctx, createReq("I hosted it"))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("non participant cannot comment", func(t *testing.T) {
		_, err := carol.feedback.CreateFeedback(ctx, createReq("I wasn't there"))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	created, err := bob.feedback.CreateFeedback(ctx, createReq("Great food"))
	require.NoError(t, err)
	assert.Equal(t, bob.user.ID, created.Msg.Feedback.UserID)
	feedbackID := created.Msg.Feedback.ID

	t.Run("one comment per meeting", func(t *testing.T) {
		_, err := bob.feedback.CreateFeedback(ctx, createReq("Again"))
		requireCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("list meeting feedback", func(t *testing.T) {
		resp, err := alice.feedback.ListMeetingFeedback(ctx, connect.NewRequest(&api.ListMeetingFeedbackRequest{MeetingID: meeting.ID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Entries, 1)
		assert.Equal(t, "Great food", resp.Msg.Entries[0].Comment)
		assert.Equal(t, "bob", resp.Msg.Entries[0].Label)
	})

	t.Run("only the author edits", func(t *testing.T) {
		_, err := alice.feedback.UpdateFeedback(ctx, connect.NewRequest(&api.UpdateFeedbackRequest{FeedbackID: feedbackID, Comment: "Bad"}))
		requireCode(t, err, connect.CodePermissionDenied)

		_, err = alice.feedback.DeleteFeedback(ctx, connect.NewRequest(&api.DeleteFeedbackRequest{FeedbackID: feedbackID}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	updated, err := bob.feedback.UpdateFeedback(ctx, connect.NewRequest(&api.UpdateFeedbackRequest{FeedbackID: feedbackID, Comment: "Great food, slow service"}))
	require.NoError(t, err)
	assert.Equal(t, "Great food, slow service", updated.Msg.Feedback.Comment)

	mine, err := bob.feedback.ListMyFeedback(ctx, connect.NewRequest(&api.ListMyFeedbackRequest{}))
	require.NoError(t, err)
	require.Len(t, mine.Msg.Entries, 1)
	assert.Equal(t, "Dinner", mine.Msg.Entries[0].Label)

	_, err = bob.feedback.DeleteFeedback(ctx, connect.NewRequest(&api.DeleteFeedbackRequest{FeedbackID: feedbackID}))
	require.NoError(t, err)

	_, err = bob.feedback.DeleteFeedback(ctx, connect.NewRequest(&api.DeleteFeedbackRequest{FeedbackID: feedbackID}))
	requireCode(t, err, connect.CodeNotFound)
}
