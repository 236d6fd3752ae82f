package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/pkg/api"
)

// CheckServiceName is the fully-qualified name of the CheckService service.
const CheckServiceName = "meetsplit.v1.CheckService"

// Procedure names of the CheckService RPCs.
const (
	CheckServiceCreatePurchaseProcedure       = "/meetsplit.v1.CheckService/CreatePurchase"
	CheckServiceUpdatePurchaseProcedure       = "/meetsplit.v1.CheckService/UpdatePurchase"
	CheckServiceDeletePurchaseProcedure       = "/meetsplit.v1.CheckService/DeletePurchase"
	CheckServiceRemoveFromPurchaseProcedure   = "/meetsplit.v1.CheckService/RemoveFromPurchase"
	CheckServiceGetPersonalStatementProcedure = "/meetsplit.v1.CheckService/GetPersonalStatement"
	CheckServiceGetMeetingStatementProcedure  = "/meetsplit.v1.CheckService/GetMeetingStatement"
)

// CheckServiceClient is a client for the meetsplit.v1.CheckService service.
type CheckServiceClient interface {
	CreatePurchase(context.Context, *connect.Request[api.CreatePurchaseRequest]) (*connect.Response[api.CreatePurchaseResponse], error)
	UpdatePurchase(context.Context, *connect.Request[api.UpdatePurchaseRequest]) (*connect.Response[api.UpdatePurchaseResponse], error)
	DeletePurchase(context.Context, *connect.Request[api.DeletePurchaseRequest]) (*connect.Response[api.DeletePurchaseResponse], error)
	RemoveFromPurchase(context.Context, *connect.Request[api.RemoveFromPurchaseRequest]) (*connect.Response[api.RemoveFromPurchaseResponse], error)
	GetPersonalStatement(context.Context, *connect.Request[api.GetPersonalStatementRequest]) (*connect.Response[api.GetPersonalStatementResponse], error)
	GetMeetingStatement(context.Context, *connect.Request[api.GetMeetingStatementRequest]) (*connect.Response[api.GetMeetingStatementResponse], error)
}

// NewCheckServiceClient constructs a client for the meetsplit.v1.CheckService
// service.
func NewCheckServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CheckServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &checkServiceClient{
		createPurchase:       connect.NewClient[api.CreatePurchaseRequest, api.CreatePurchaseResponse](httpClient, baseURL+CheckServiceCreatePurchaseProcedure, opts...),
		updatePurchase:       connect.NewClient[api.UpdatePurchaseRequest, api.UpdatePurchaseResponse](httpClient, baseURL+CheckServiceUpdatePurchaseProcedure, opts...),
		deletePurchase:       connect.NewClient[api.DeletePurchaseRequest, api.DeletePurchaseResponse](httpClient, baseURL+CheckServiceDeletePurchaseProcedure, opts...),
		removeFromPurchase:   connect.NewClient[api.RemoveFromPurchaseRequest, api.RemoveFromPurchaseResponse](httpClient, baseURL+CheckServiceRemoveFromPurchaseProcedure, opts...),
		getPersonalStatement: connect.NewClient[api.GetPersonalStatementRequest, api.GetPersonalStatementResponse](httpClient, baseURL+CheckServiceGetPersonalStatementProcedure, opts...),
		getMeetingStatement:  connect.NewClient[api.GetMeetingStatementRequest, api.GetMeetingStatementResponse](httpClient, baseURL+CheckServiceGetMeetingStatementProcedure, opts...),
	}
}

type checkServiceClient struct {
	createPurchase       *connect.Client[api.CreatePurchaseRequest, api.CreatePurchaseResponse]
	updatePurchase       *connect.Client[api.UpdatePurchaseRequest, api.UpdatePurchaseResponse]
	deletePurchase       *connect.Client[api.DeletePurchaseRequest, api.DeletePurchaseResponse]
	removeFromPurchase   *connect.Client[api.RemoveFromPurchaseRequest, api.RemoveFromPurchaseResponse]
	getPersonalStatement *connect.Client[api.GetPersonalStatementRequest, api.GetPersonalStatementResponse]
	getMeetingStatement  *connect.Client[api.GetMeetingStatementRequest, api.GetMeetingStatementResponse]
}

func (c *checkServiceClient) CreatePurchase(ctx context.Context, req *connect.Request[api.CreatePurchaseRequest]) (*connect.Response[api.CreatePurchaseResponse], error) {
	return c.createPurchase.CallUnary(ctx, req)
}

func (c *checkServiceClient) UpdatePurchase(ctx context.Context, req *connect.Request[api.UpdatePurchaseRequest]) (*connect.Response[api.UpdatePurchaseResponse], error) {
	return c.updatePurchase.CallUnary(ctx, req)
}

func (c *checkServiceClient) DeletePurchase(ctx context.Context, req *connect.Request[api.DeletePurchaseRequest]) (*connect.Response[api.DeletePurchaseResponse], error) {
	return c.deletePurchase.CallUnary(ctx, req)
}

func (c *checkServiceClient) RemoveFromPurchase(ctx context.Context, req *connect.Request[api.RemoveFromPurchaseRequest]) (*connect.Response[api.RemoveFromPurchaseResponse], error) {
	return c.removeFromPurchase.CallUnary(ctx, req)
}

func (c *checkServiceClient) GetPersonalStatement(ctx context.Context, req *connect.Request[api.GetPersonalStatementRequest]) (*connect.Response[api.GetPersonalStatementResponse], error) {
	return c.getPersonalStatement.CallUnary(ctx, req)
}

func (c *checkServiceClient) GetMeetingStatement(ctx context.Context, req *connect.Request[api.GetMeetingStatementRequest]) (*connect.Response[api.GetMeetingStatementResponse], error) {
	return c.getMeetingStatement.CallUnary(ctx, req)
}

// CheckServiceHandler is implemented by the meetsplit.v1.CheckService service.
type CheckServiceHandler interface {
	CreatePurchase(context.Context, *connect.Request[api.CreatePurchaseRequest]) (*connect.Response[api.CreatePurchaseResponse], error)
	UpdatePurchase(context.Context, *connect.Request[api.UpdatePurchaseRequest]) (*connect.Response[api.UpdatePurchaseResponse], error)
	DeletePurchase(context.Context, *connect.Request[api.DeletePurchaseRequest]) (*connect.Response[api.DeletePurchaseResponse], error)
	RemoveFromPurchase(context.Context, *connect.Request[api.RemoveFromPurchaseRequest]) (*connect.Response[api.RemoveFromPurchaseResponse], error)
	GetPersonalStatement(context.Context, *connect.Request[api.GetPersonalStatementRequest]) (*connect.Response[api.GetPersonalStatementResponse], error)
	GetMeetingStatement(context.Context, *connect.Request[api.GetMeetingStatementRequest]) (*connect.Response[api.GetMeetingStatementResponse], error)
}

// NewCheckServiceHandler builds an HTTP handler from the service
// implementation.
func NewCheckServiceHandler(svc CheckServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createPurchaseHandler := connect.NewUnaryHandler(CheckServiceCreatePurchaseProcedure, svc.CreatePurchase, opts...)
	updatePurchaseHandler := connect.NewUnaryHandler(CheckServiceUpdatePurchaseProcedure, svc.UpdatePurchase, opts...)
	deletePurchaseHandler := connect.NewUnaryHandler(CheckServiceDeletePurchaseProcedure, svc.DeletePurchase, opts...)
	removeFromPurchaseHandler := connect.NewUnaryHandler(CheckServiceRemoveFromPurchaseProcedure, svc.RemoveFromPurchase, opts...)
	getPersonalStatementHandler := connect.NewUnaryHandler(CheckServiceGetPersonalStatementProcedure, svc.GetPersonalStatement, opts...)
	getMeetingStatementHandler := connect.NewUnaryHandler(CheckServiceGetMeetingStatementProcedure, svc.GetMeetingStatement, opts...)
	return "/" + CheckServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CheckServiceCreatePurchaseProcedure:
			createPurchaseHandler.ServeHTTP(w, r)
		case CheckServiceUpdatePurchaseProcedure:
			updatePurchaseHandler.ServeHTTP(w, r)
		case CheckServiceDeletePurchaseProcedure:
			deletePurchaseHandler.ServeHTTP(w, r)
		case CheckServiceRemoveFromPurchaseProcedure:
			removeFromPurchaseHandler.ServeHTTP(w, r)
		case CheckServiceGetPersonalStatementProcedure:
			getPersonalStatementHandler.ServeHTTP(w, r)
		case CheckServiceGetMeetingStatementProcedure:
			getMeetingStatementHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
