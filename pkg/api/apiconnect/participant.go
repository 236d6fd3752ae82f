package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/pkg/api"
)

// ParticipantServiceName is the fully-qualified name of the
// ParticipantService service.
const ParticipantServiceName = "meetsplit.v1.ParticipantService"

// Procedure names of the ParticipantService RPCs.
const (
	ParticipantServiceAddParticipantsProcedure    = "/meetsplit.v1.ParticipantService/AddParticipants"
	ParticipantServiceJoinMeetingsProcedure       = "/meetsplit.v1.ParticipantService/JoinMeetings"
	ParticipantServiceLeaveMeetingsProcedure      = "/meetsplit.v1.ParticipantService/LeaveMeetings"
	ParticipantServiceRemoveParticipantsProcedure = "/meetsplit.v1.ParticipantService/RemoveParticipants"
)

// ParticipantServiceClient is a client for the
// meetsplit.v1.ParticipantService service.
type ParticipantServiceClient interface {
	AddParticipants(context.Context, *connect.Request[api.AddParticipantsRequest]) (*connect.Response[api.AddParticipantsResponse], error)
	JoinMeetings(context.Context, *connect.Request[api.JoinMeetingsRequest]) (*connect.Response[api.JoinMeetingsResponse], error)
	LeaveMeetings(context.Context, *connect.Request[api.LeaveMeetingsRequest]) (*connect.Response[api.LeaveMeetingsResponse], error)
	RemoveParticipants(context.Context, *connect.Request[api.RemoveParticipantsRequest]) (*connect.Response[api.RemoveParticipantsResponse], error)
}

// NewParticipantServiceClient constructs a client for the
// meetsplit.v1.ParticipantService service.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &participantServiceClient{
		addParticipants:    connect.NewClient[api.AddParticipantsRequest, api.AddParticipantsResponse](httpClient, baseURL+ParticipantServiceAddParticipantsProcedure, opts...),
		joinMeetings:       connect.NewClient[api.JoinMeetingsRequest, api.JoinMeetingsResponse](httpClient, baseURL+ParticipantServiceJoinMeetingsProcedure, opts...),
		leaveMeetings:      connect.NewClient[api.LeaveMeetingsRequest, api.LeaveMeetingsResponse](httpClient, baseURL+ParticipantServiceLeaveMeetingsProcedure, opts...),
		removeParticipants: connect.NewClient[api.RemoveParticipantsRequest, api.RemoveParticipantsResponse](httpClient, baseURL+ParticipantServiceRemoveParticipantsProcedure, opts...),
	}
}

type participantServiceClient struct {
	addParticipants    *connect.Client[api.AddParticipantsRequest, api.AddParticipantsResponse]
	joinMeetings       *connect.Client[api.JoinMeetingsRequest, api.JoinMeetingsResponse]
	leaveMeetings      *connect.Client[api.LeaveMeetingsRequest, api.LeaveMeetingsResponse]
	removeParticipants *connect.Client[api.RemoveParticipantsRequest, api.RemoveParticipantsResponse]
}

func (c *participantServiceClient) AddParticipants(ctx context.Context, req *connect.Request[api.AddParticipantsRequest]) (*connect.Response[api.AddParticipantsResponse], error) {
	return c.addParticipants.CallUnary(ctx, req)
}

func (c *participantServiceClient) JoinMeetings(ctx context.Context, req *connect.Request[api.JoinMeetingsRequest]) (*connect.Response[api.JoinMeetingsResponse], error) {
	return c.joinMeetings.CallUnary(ctx, req)
}

func (c *participantServiceClient) LeaveMeetings(ctx context.Context, req *connect.Request[api.LeaveMeetingsRequest]) (*connect.Response[api.LeaveMeetingsResponse], error) {
	return c.leaveMeetings.CallUnary(ctx, req)
}

func (c *participantServiceClient) RemoveParticipants(ctx context.Context, req *connect.Request[api.RemoveParticipantsRequest]) (*connect.Response[api.RemoveParticipantsResponse], error) {
	return c.removeParticipants.CallUnary(ctx, req)
}

// ParticipantServiceHandler is implemented by the
// meetsplit.v1.ParticipantService service.
type ParticipantServiceHandler interface {
	AddParticipants(context.Context, *connect.Request[api.AddParticipantsRequest]) (*connect.Response[api.AddParticipantsResponse], error)
	JoinMeetings(context.Context, *connect.Request[api.JoinMeetingsRequest]) (*connect.Response[api.JoinMeetingsResponse], error)
	LeaveMeetings(context.Context, *connect.Request[api.LeaveMeetingsRequest]) (*connect.Response[api.LeaveMeetingsResponse], error)
	RemoveParticipants(context.Context, *connect.Request[api.RemoveParticipantsRequest]) (*connect.Response[api.RemoveParticipantsResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler from the service
// implementation.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addParticipantsHandler := connect.NewUnaryHandler(ParticipantServiceAddParticipantsProcedure, svc.AddParticipants, opts...)
	joinMeetingsHandler := connect.NewUnaryHandler(ParticipantServiceJoinMeetingsProcedure, svc.JoinMeetings, opts...)
	leaveMeetingsHandler := connect.NewUnaryHandler(ParticipantServiceLeaveMeetingsProcedure, svc.LeaveMeetings, opts...)
	removeParticipantsHandler := connect.NewUnaryHandler(ParticipantServiceRemoveParticipantsProcedure, svc.RemoveParticipants, opts...)
	return "/" + ParticipantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ParticipantServiceAddParticipantsProcedure:
			addParticipantsHandler.ServeHTTP(w, r)
		case ParticipantServiceJoinMeetingsProcedure:
			joinMeetingsHandler.ServeHTTP(w, r)
		case ParticipantServiceLeaveMeetingsProcedure:
			leaveMeetingsHandler.ServeHTTP(w, r)
		case ParticipantServiceRemoveParticipantsProcedure:
			removeParticipantsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
