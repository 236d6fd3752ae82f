package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/meetsplit/internal/auth"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

const (
	whoAmIProcedure = "/test.v1.TestService/WhoAmI"
	publicProcedure = "/test.v1.TestService/Public"
	failProcedure   = "/test.v1.TestService/Fail"
)

type whoAmI struct {
	UserID string `json:"user_id"`
}

func whoAmIHandler(ctx context.Context, _ *connect.Request[whoAmI]) (*connect.Response[whoAmI], error) {
	return connect.NewResponse(&whoAmI{UserID: GetUserID(ctx)}), nil
}

func failHandler(context.Context, *connect.Request[whoAmI]) (*connect.Response[whoAmI], error) {
	return nil, connect.NewError(connect.CodeNotFound, errors.New("nothing here"))
}

func setupServer(t *testing.T, interceptors ...connect.Interceptor) string {
	t.Helper()

	opts := []connect.HandlerOption{
		connect.WithCodec(apiconnect.Codec{}),
		connect.WithInterceptors(interceptors...),
	}
	mux := http.NewServeMux()
	mux.Handle(whoAmIProcedure, connect.NewUnaryHandler(whoAmIProcedure, whoAmIHandler, opts...))
	mux.Handle(publicProcedure, connect.NewUnaryHandler(publicProcedure, whoAmIHandler, opts...))
	mux.Handle(failProcedure, connect.NewUnaryHandler(failProcedure, failHandler, opts...))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func call(t *testing.T, baseURL, procedure, token string) (*connect.Response[whoAmI], error) {
	t.Helper()

	client := connect.NewClient[whoAmI, whoAmI](http.DefaultClient, baseURL+procedure, connect.WithCodec(apiconnect.Codec{}))
	req := connect.NewRequest(&whoAmI{})
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return client.CallUnary(context.Background(), req)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	baseURL := setupServer(t, RequireAuth(jwtManager, publicProcedure))

	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "alice@example.com"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		resp, err := call(t, baseURL, whoAmIProcedure, token)
		require.NoError(t, err)
		assert.Equal(t, "u1", resp.Msg.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := call(t, baseURL, whoAmIProcedure, "")
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := call(t, baseURL, whoAmIProcedure, "garbage")
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("public procedure", func(t *testing.T) {
		resp, err := call(t, baseURL, publicProcedure, "")
		require.NoError(t, err)
		assert.Empty(t, resp.Msg.UserID)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		if token != tt.token || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, token, ok, tt.token, tt.ok)
		}
	}
}

func TestRPCMetrics(t *testing.T) {
	metrics := NewRPCMetrics(prometheus.NewRegistry())
	baseURL := setupServer(t, metrics.Interceptor(), LoggingInterceptor())

	_, err := call(t, baseURL, publicProcedure, "")
	require.NoError(t, err)
	_, err = call(t, baseURL, failProcedure, "")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(publicProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(failProcedure, "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS([]string{"http://localhost:3000"}, next)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
