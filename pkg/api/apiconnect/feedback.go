package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/pkg/api"
)

// FeedbackServiceName is the fully-qualified name of the FeedbackService service.
const FeedbackServiceName = "meetsplit.v1.FeedbackService"

// Procedure names of the FeedbackService RPCs.
const (
	FeedbackServiceCreateFeedbackProcedure      = "/meetsplit.v1.FeedbackService/CreateFeedback"
	FeedbackServiceUpdateFeedbackProcedure      = "/meetsplit.v1.FeedbackService/UpdateFeedback"
	FeedbackServiceDeleteFeedbackProcedure      = "/meetsplit.v1.FeedbackService/DeleteFeedback"
	FeedbackServiceListMeetingFeedbackProcedure = "/meetsplit.v1.FeedbackService/ListMeetingFeedback"
	FeedbackServiceListMyFeedbackProcedure      = "/meetsplit.v1.FeedbackService/ListMyFeedback"
)

// FeedbackServiceClient is a client for the meetsplit.v1.FeedbackService service.
type FeedbackServiceClient interface {
	CreateFeedback(context.Context, *connect.Request[api.CreateFeedbackRequest]) (*connect.Response[api.CreateFeedbackResponse], error)
	UpdateFeedback(context.Context, *connect.Request[api.UpdateFeedbackRequest]) (*connect.Response[api.UpdateFeedbackResponse], error)
	DeleteFeedback(context.Context, *connect.Request[api.DeleteFeedbackRequest]) (*connect.Response[api.DeleteFeedbackResponse], error)
	ListMeetingFeedback(context.Context, *connect.Request[api.ListMeetingFeedbackRequest]) (*connect.Response[api.ListMeetingFeedbackResponse], error)
	ListMyFeedback(context.Context, *connect.Request[api.ListMyFeedbackRequest]) (*connect.Response[api.ListMyFeedbackResponse], error)
}

// NewFeedbackServiceClient constructs a client for the
// meetsplit.v1.FeedbackService service.
func NewFeedbackServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FeedbackServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &feedbackServiceClient{
		createFeedback:      connect.NewClient[api.CreateFeedbackRequest, api.CreateFeedbackResponse](httpClient, baseURL+FeedbackServiceCreateFeedbackProcedure, opts...),
		updateFeedback:      connect.NewClient[api.UpdateFeedbackRequest, api.UpdateFeedbackResponse](httpClient, baseURL+FeedbackServiceUpdateFeedbackProcedure, opts...),
		deleteFeedback:      connect.NewClient[api.DeleteFeedbackRequest, api.DeleteFeedbackResponse](httpClient, baseURL+FeedbackServiceDeleteFeedbackProcedure, opts...),
		listMeetingFeedback: connect.NewClient[api.ListMeetingFeedbackRequest, api.ListMeetingFeedbackResponse](httpClient, baseURL+FeedbackServiceListMeetingFeedbackProcedure, opts...),
		listMyFeedback:      connect.NewClient[api.ListMyFeedbackRequest, api.ListMyFeedbackResponse](httpClient, baseURL+FeedbackServiceListMyFeedbackProcedure, opts...),
	}
}

type feedbackServiceClient struct {
	createFeedback      *connect.Client[api.CreateFeedbackRequest, api.CreateFeedbackResponse]
	updateFeedback      *connect.Client[api.UpdateFeedbackRequest, api.UpdateFeedbackResponse]
	deleteFeedback      *connect.Client[api.DeleteFeedbackRequest, api.DeleteFeedbackResponse]
	listMeetingFeedback *connect.Client[api.ListMeetingFeedbackRequest, api.ListMeetingFeedbackResponse]
	listMyFeedback      *connect.Client[api.ListMyFeedbackRequest, api.ListMyFeedbackResponse]
}

func (c *feedbackServiceClient) CreateFeedback(ctx context.Context, req *connect.Request[api.CreateFeedbackRequest]) (*connect.Response[api.CreateFeedbackResponse], error) {
	return c.createFeedback.CallUnary(ctx, req)
}

func (c *feedbackServiceClient) UpdateFeedback(ctx context.Context, req *connect.Request[api.UpdateFeedbackRequest]) (*connect.Response[api.UpdateFeedbackResponse], error) {
	return c.updateFeedback.CallUnary(ctx, req)
}

func (c *feedbackServiceClient) DeleteFeedback(ctx context.Context, req *connect.Request[api.DeleteFeedbackRequest]) (*connect.Response[api.DeleteFeedbackResponse], error) {
	return c.deleteFeedback.CallUnary(ctx, req)
}

func (c *feedbackServiceClient) ListMeetingFeedback(ctx context.Context, req *connect.Request[api.ListMeetingFeedbackRequest]) (*connect.Response[api.ListMeetingFeedbackResponse], error) {
	return c.listMeetingFeedback.CallUnary(ctx, req)
}

func (c *feedbackServiceClient) ListMyFeedback(ctx context.Context, req *connect.Request[api.ListMyFeedbackRequest]) (*connect.Response[api.ListMyFeedbackResponse], error) {
	return c.listMyFeedback.CallUnary(ctx, req)
}

// FeedbackServiceHandler is implemented by the meetsplit.v1.FeedbackService service.
type FeedbackServiceHandler interface {
	CreateFeedback(context.Context, *connect.Request[api.CreateFeedbackRequest]) (*connect.Response[api.CreateFeedbackResponse], error)
	UpdateFeedback(context.Context, *connect.Request[api.UpdateFeedbackRequest]) (*connect.Response[api.UpdateFeedbackResponse], error)
	DeleteFeedback(context.Context, *connect.Request[api.DeleteFeedbackRequest]) (*connect.Response[api.DeleteFeedbackResponse], error)
	ListMeetingFeedback(context.Context, *connect.Request[api.ListMeetingFeedbackRequest]) (*connect.Response[api.ListMeetingFeedbackResponse], error)
	ListMyFeedback(context.Context, *connect.Request[api.ListMyFeedbackRequest]) (*connect.Response[api.ListMyFeedbackResponse], error)
}

// NewFeedbackServiceHandler builds an HTTP handler from the service
// implementation.
func NewFeedbackServiceHandler(svc FeedbackServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createFeedbackHandler := connect.NewUnaryHandler(FeedbackServiceCreateFeedbackProcedure, svc.CreateFeedback, opts...)
	updateFeedbackHandler := connect.NewUnaryHandler(FeedbackServiceUpdateFeedbackProcedure, svc.UpdateFeedback, opts...)
	deleteFeedbackHandler := connect.NewUnaryHandler(FeedbackServiceDeleteFeedbackProcedure, svc.DeleteFeedback, opts...)
	listMeetingFeedbackHandler := connect.NewUnaryHandler(FeedbackServiceListMeetingFeedbackProcedure, svc.ListMeetingFeedback, opts...)
	listMyFeedbackHandler := connect.NewUnaryHandler(FeedbackServiceListMyFeedbackProcedure, svc.ListMyFeedback, opts...)
	return "/" + FeedbackServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case FeedbackServiceCreateFeedbackProcedure:
			createFeedbackHandler.ServeHTTP(w, r)
		case FeedbackServiceUpdateFeedbackProcedure:
			updateFeedbackHandler.ServeHTTP(w, r)
		case FeedbackServiceDeleteFeedbackProcedure:
			deleteFeedbackHandler.ServeHTTP(w, r)
		case FeedbackServiceListMeetingFeedbackProcedure:
			listMeetingFeedbackHandler.ServeHTTP(w, r)
		case FeedbackServiceListMyFeedbackProcedure:
			listMyFeedbackHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
