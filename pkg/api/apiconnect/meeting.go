package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/pkg/api"
)

// MeetingServiceName is the fully-qualified name of the MeetingService service.
const MeetingServiceName = "meetsplit.v1.MeetingService"

// Procedure names of the MeetingService RPCs.
const (
	MeetingServiceCreateMeetingProcedure  = "/meetsplit.v1.MeetingService/CreateMeeting"
	MeetingServiceListMeetingsProcedure   = "/meetsplit.v1.MeetingService/ListMeetings"
	MeetingServiceGetMeetingProcedure     = "/meetsplit.v1.MeetingService/GetMeeting"
	MeetingServiceUpdateMeetingProcedure  = "/meetsplit.v1.MeetingService/UpdateMeeting"
	MeetingServiceDeleteMeetingsProcedure = "/meetsplit.v1.MeetingService/DeleteMeetings"
)

// MeetingServiceClient is a client for the meetsplit.v1.MeetingService service.
type MeetingServiceClient interface {
	CreateMeeting(context.Context, *connect.Request[api.CreateMeetingRequest]) (*connect.Response[api.CreateMeetingResponse], error)
	ListMeetings(context.Context, *connect.Request[api.ListMeetingsRequest]) (*connect.Response[api.ListMeetingsResponse], error)
	GetMeeting(context.Context, *connect.Request[api.GetMeetingRequest]) (*connect.Response[api.GetMeetingResponse], error)
	UpdateMeeting(context.Context, *connect.Request[api.UpdateMeetingRequest]) (*connect.Response[api.UpdateMeetingResponse], error)
	DeleteMeetings(context.Context, *connect.Request[api.DeleteMeetingsRequest]) (*connect.Response[api.DeleteMeetingsResponse], error)
}

// NewMeetingServiceClient constructs a client for the
// meetsplit.v1.MeetingService service.
func NewMeetingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MeetingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &meetingServiceClient{
		createMeeting:  connect.NewClient[api.CreateMeetingRequest, api.CreateMeetingResponse](httpClient, baseURL+MeetingServiceCreateMeetingProcedure, opts...),
		listMeetings:   connect.NewClient[api.ListMeetingsRequest, api.ListMeetingsResponse](httpClient, baseURL+MeetingServiceListMeetingsProcedure, opts...),
		getMeeting:     connect.NewClient[api.GetMeetingRequest, api.GetMeetingResponse](httpClient, baseURL+MeetingServiceGetMeetingProcedure, opts...),
		updateMeeting:  connect.NewClient[api.UpdateMeetingRequest, api.UpdateMeetingResponse](httpClient, baseURL+MeetingServiceUpdateMeetingProcedure, opts...),
		deleteMeetings: connect.NewClient[api.DeleteMeetingsRequest, api.DeleteMeetingsResponse](httpClient, baseURL+MeetingServiceDeleteMeetingsProcedure, opts...),
	}
}

type meetingServiceClient struct {
	createMeeting  *connect.Client[api.CreateMeetingRequest, api.CreateMeetingResponse]
	listMeetings   *connect.Client[api.ListMeetingsRequest, api.ListMeetingsResponse]
	getMeeting     *connect.Client[api.GetMeetingRequest, api.GetMeetingResponse]
	updateMeeting  *connect.Client[api.UpdateMeetingRequest, api.UpdateMeetingResponse]
	deleteMeetings *connect.Client[api.DeleteMeetingsRequest, api.DeleteMeetingsResponse]
}

func (c *meetingServiceClient) CreateMeeting(ctx context.Context, req *connect.Request[api.CreateMeetingRequest]) (*connect.Response[api.CreateMeetingResponse], error) {
	return c.createMeeting.CallUnary(ctx, req)
}

func (c *meetingServiceClient) ListMeetings(ctx context.Context, req *connect.Request[api.ListMeetingsRequest]) (*connect.Response[api.ListMeetingsResponse], error) {
	return c.listMeetings.CallUnary(ctx, req)
}

func (c *meetingServiceClient) GetMeeting(ctx context.Context, req *connect.Request[api.GetMeetingRequest]) (*connect.Response[api.GetMeetingResponse], error) {
	return c.getMeeting.CallUnary(ctx, req)
}

func (c *meetingServiceClient) UpdateMeeting(ctx context.Context, req *connect.Request[api.UpdateMeetingRequest]) (*connect.Response[api.UpdateMeetingResponse], error) {
	return c.updateMeeting.CallUnary(ctx, req)
}

func (c *meetingServiceClient) DeleteMeetings(ctx context.Context, req *connect.Request[api.DeleteMeetingsRequest]) (*connect.Response[api.DeleteMeetingsResponse], error) {
	return c.deleteMeetings.CallUnary(ctx, req)
}

// MeetingServiceHandler is implemented by the meetsplit.v1.MeetingService service.
type MeetingServiceHandler interface {
	CreateMeeting(context.Context, *connect.Request[api.CreateMeetingRequest]) (*connect.Response[api.CreateMeetingResponse], error)
	ListMeetings(context.Context, *connect.Request[api.ListMeetingsRequest]) (*connect.Response[api.ListMeetingsResponse], error)
	GetMeeting(context.Context, *connect.Request[api.GetMeetingRequest]) (*connect.Response[api.GetMeetingResponse], error)
	UpdateMeeting(context.Context, *connect.Request[api.UpdateMeetingRequest]) (*connect.Response[api.UpdateMeetingResponse], error)
	DeleteMeetings(context.Context, *connect.Request[api.DeleteMeetingsRequest]) (*connect.Response[api.DeleteMeetingsResponse], error)
}

// NewMeetingServiceHandler builds an HTTP handler from the service
// implementation.
func NewMeetingServiceHandler(svc MeetingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createMeetingHandler := connect.NewUnaryHandler(MeetingServiceCreateMeetingProcedure, svc.CreateMeeting, opts...)
	listMeetingsHandler := connect.NewUnaryHandler(MeetingServiceListMeetingsProcedure, svc.ListMeetings, opts...)
	getMeetingHandler := connect.NewUnaryHandler(MeetingServiceGetMeetingProcedure, svc.GetMeeting, opts...)
	updateMeetingHandler := connect.NewUnaryHandler(MeetingServiceUpdateMeetingProcedure, svc.UpdateMeeting, opts...)
	deleteMeetingsHandler := connect.NewUnaryHandler(MeetingServiceDeleteMeetingsProcedure, svc.DeleteMeetings, opts...)
	return "/" + MeetingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case MeetingServiceCreateMeetingProcedure:
			createMeetingHandler.ServeHTTP(w, r)
		case MeetingServiceListMeetingsProcedure:
			listMeetingsHandler.ServeHTTP(w, r)
		case MeetingServiceGetMeetingProcedure:
			getMeetingHandler.ServeHTTP(w, r)
		case MeetingServiceUpdateMeetingProcedure:
			updateMeetingHandler.ServeHTTP(w, r)
		case MeetingServiceDeleteMeetingsProcedure:
			deleteMeetingsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
