package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "meetsplit.v1.UserService"

// Procedure names of the UserService RPCs.
const (
	UserServiceRegisterProcedure       = "/meetsplit.v1.UserService/Register"
	UserServiceActivateProcedure       = "/meetsplit.v1.UserService/Activate"
	UserServiceLoginProcedure          = "/meetsplit.v1.UserService/Login"
	UserServiceUpdateUserProcedure     = "/meetsplit.v1.UserService/UpdateUser"
	UserServiceGetCurrentUserProcedure = "/meetsplit.v1.UserService/GetCurrentUser"
)

// UserServiceClient is a client for the meetsplit.v1.UserService service.
type UserServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Activate(context.Context, *connect.Request[api.ActivateRequest]) (*connect.Response[api.ActivateResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewUserServiceClient constructs a client for the meetsplit.v1.UserService
// service. baseURL is the server's scheme and host, without a trailing slash.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+UserServiceRegisterProcedure, opts...),
		activate:       connect.NewClient[api.ActivateRequest, api.ActivateResponse](httpClient, baseURL+UserServiceActivateProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+UserServiceLoginProcedure, opts...),
		updateUser:     connect.NewClient[api.UpdateUserRequest, api.UpdateUserResponse](httpClient, baseURL+UserServiceUpdateUserProcedure, opts...),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+UserServiceGetCurrentUserProcedure, opts...),
	}
}

type userServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	activate       *connect.Client[api.ActivateRequest, api.ActivateResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	updateUser     *connect.Client[api.UpdateUserRequest, api.UpdateUserResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

func (c *userServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *userServiceClient) Activate(ctx context.Context, req *connect.Request[api.ActivateRequest]) (*connect.Response[api.ActivateResponse], error) {
	return c.activate.CallUnary(ctx, req)
}

func (c *userServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	return c.updateUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// UserServiceHandler is implemented by the meetsplit.v1.UserService service.
type UserServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Activate(context.Context, *connect.Request[api.ActivateRequest]) (*connect.Response[api.ActivateResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	registerHandler := connect.NewUnaryHandler(UserServiceRegisterProcedure, svc.Register, opts...)
	activateHandler := connect.NewUnaryHandler(UserServiceActivateProcedure, svc.Activate, opts...)
	loginHandler := connect.NewUnaryHandler(UserServiceLoginProcedure, svc.Login, opts...)
	updateUserHandler := connect.NewUnaryHandler(UserServiceUpdateUserProcedure, svc.UpdateUser, opts...)
	getCurrentUserHandler := connect.NewUnaryHandler(UserServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case UserServiceActivateProcedure:
			activateHandler.ServeHTTP(w, r)
		case UserServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case UserServiceUpdateUserProcedure:
			updateUserHandler.ServeHTTP(w, r)
		case UserServiceGetCurrentUserProcedure:
			getCurrentUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
