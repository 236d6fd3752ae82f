package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/auth"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
	"github.com/mmynk/meetsplit/pkg/api"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// UserService implements the UserService RPC interface.
type UserService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	publicURL     string
	logger        *slog.Logger
}

// NewUserService creates the user service. publicURL is the base of the
// activation links written to the log.
func NewUserService(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, publicURL string, logger *slog.Logger) *UserService {
	return &UserService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		publicURL:     publicURL,
		logger:        logger,
	}
}

// Register creates a new, not yet activated, account.
func (s *UserService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Lastname, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	// No mail delivery: the link is handed to whoever reads the log.
	s.logger.Info("User registered", "user_id", user.ID, "activation_link", s.publicURL+"/activate/"+user.ID)

	return connect.NewResponse(&api.RegisterResponse{User: userToAPI(user)}), nil
}

// Activate marks a new account as active.
func (s *UserService) Activate(ctx context.Context, req *connect.Request[api.ActivateRequest]) (*connect.Response[api.ActivateResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		user, err = tx.GetUserByID(ctx, req.Msg.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user", req.Msg.UserID)
		}
		if user.IsActive() {
			return apperr.Conflict("user", "account is already active")
		}

		status := models.UserStatusActive
		if err := tx.UpdateUser(ctx, user.ID, storage.UserUpdate{Status: &status}); err != nil {
			return err
		}
		user.Status = status
		return nil
	})
	if err != nil {
		s.logger.Warn("Activation failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User activated", "user_id", user.ID)
	return connect.NewResponse(&api.ActivateResponse{User: userToAPI(user)}), nil
}

// Login authenticates a user and returns an access token.
func (s *UserService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: userToAPI(user), Token: token}), nil
}

// UpdateUser changes the caller's profile.
func (s *UserService) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	update := storage.UserUpdate{
		Name:     req.Msg.Name,
		Lastname: req.Msg.Lastname,
		Email:    req.Msg.Email,
	}
	if req.Msg.Password != nil {
		hash, err := s.authenticator.HashCredential(*req.Msg.Password)
		if err != nil {
			return nil, toConnectError(err)
		}
		update.PasswordHash = &hash
	}

	var user *models.User
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		if update.Email != nil {
			other, err := tx.GetUserByEmail(ctx, *update.Email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != userID {
				return apperr.Conflict("user", "email already registered")
			}
		}

		current, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("user", userID)
		}

		if err := tx.UpdateUser(ctx, userID, update); err != nil {
			return err
		}
		user, err = tx.GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Warn("UpdateUser failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User updated", "user_id", userID)
	return connect.NewResponse(&api.UpdateUserResponse{User: userToAPI(user)}), nil
}

// GetCurrentUser returns the caller's profile.
func (s *UserService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, toConnectError(apperr.NotFound("user", userID))
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: userToAPI(user)}), nil
}
