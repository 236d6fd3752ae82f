package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/meetsplit/internal/auth"
	"github.com/mmynk/meetsplit/internal/billing"
	"github.com/mmynk/meetsplit/internal/middleware"
	"github.com/mmynk/meetsplit/internal/storage/sqlstore"
	"github.com/mmynk/meetsplit/pkg/api"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

const testPassword = "secret1"

// testEnv is a server with every service mounted behind the auth interceptor.
type testEnv struct {
	url   string
	store *sqlstore.SQLStore
	users apiconnect.UserServiceClient
}

// testClient holds one signed-in user's clients.
type testClient struct {
	user         *api.User
	token        string
	users        apiconnect.UserServiceClient
	meetings     apiconnect.MeetingServiceClient
	participants apiconnect.ParticipantServiceClient
	feedback     apiconnect.FeedbackServiceClient
	checks       apiconnect.CheckServiceClient
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "meetsplit-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlstore.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	engine := billing.NewEngine(store, nil)

	opts := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store, authenticator, jwtManager, "http://localhost", logger), opts))
	mux.Handle(apiconnect.NewMeetingServiceHandler(NewMeetingService(store), opts))
	mux.Handle(apiconnect.NewParticipantServiceHandler(NewParticipantService(store), opts))
	mux.Handle(apiconnect.NewFeedbackServiceHandler(NewFeedbackService(store), opts))
	mux.Handle(apiconnect.NewCheckServiceHandler(NewCheckService(store, engine), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		url:   server.URL,
		store: store,
		users: apiconnect.NewUserServiceClient(http.DefaultClient, server.URL),
	}
}

func bearer(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

// register creates an account without activating it.
func (e *testEnv) register(t *testing.T, name string) *api.User {
	t.Helper()

	resp, err := e.users.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    name + "@example.com",
		Password: testPassword,
		Name:     name,
	}))
	require.NoError(t, err)
	return resp.Msg.User
}

// signIn registers, activates and logs in a user.
func (e *testEnv) signIn(t *testing.T, name string) *testClient {
	t.Helper()
	ctx := context.Background()

	user := e.register(t, name)
	_, err := e.users.Activate(ctx, connect.NewRequest(&api.ActivateRequest{UserID: user.ID}))
	require.NoError(t, err)

	login, err := e.users.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    user.Email,
		Password: testPassword,
	}))
	require.NoError(t, err)

	opt := bearer(login.Msg.Token)
	return &testClient{
		user:         login.Msg.User,
		token:        login.Msg.Token,
		users:        apiconnect.NewUserServiceClient(http.DefaultClient, e.url, opt),
		meetings:     apiconnect.NewMeetingServiceClient(http.DefaultClient, e.url, opt),
		participants: apiconnect.NewParticipantServiceClient(http.DefaultClient, e.url, opt),
		feedback:     apiconnect.NewFeedbackServiceClient(http.DefaultClient, e.url, opt),
		checks:       apiconnect.NewCheckServiceClient(http.DefaultClient, e.url, opt),
	}
}

// createMeeting creates a meeting owned by c.
func (c *testClient) createMeeting(t *testing.T, name string) *api.Meeting {
	t.Helper()

	resp, err := c.meetings.CreateMeeting(context.Background(), connect.NewRequest(&api.CreateMeetingRequest{
		Name: name,
		Date: "2025-06-01T18:00:00Z",
	}))
	require.NoError(t, err)
	return resp.Msg.Meeting
}

// join makes c a participant of the meeting and returns the participant id.
func (c *testClient) join(t *testing.T, meetingID string) string {
	t.Helper()

	resp, err := c.participants.JoinMeetings(context.Background(), connect.NewRequest(&api.JoinMeetingsRequest{
		MeetingIDs: []string{meetingID},
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Participants, 1)
	return resp.Msg.Participants[0].ID
}

// participantID returns c's participant id in the meeting.
func (c *testClient) participantID(t *testing.T, meetingID string) string {
	t.Helper()

	resp, err := c.meetings.GetMeeting(context.Background(), connect.NewRequest(&api.GetMeetingRequest{MeetingID: meetingID}))
	require.NoError(t, err)
	for _, p := range resp.Msg.Meeting.Participants {
		if p.UserID == c.user.ID {
			return p.ID
		}
	}
	t.Fatalf("user %s is not a participant of %s", c.user.ID, meetingID)
	return ""
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "error: %v", err)
}
