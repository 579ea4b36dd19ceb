package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiful-70/ai-rate-limiter/internal/auth"
	"github.com/saiful-70/ai-rate-limiter/internal/llm"
	"github.com/saiful-70/ai-rate-limiter/internal/models"
	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
	"github.com/saiful-70/ai-rate-limiter/internal/storage"
)

// mockStore implements storage.Store for handler tests that need to force
// backend failures. Happy-path tests use the real in-memory store.
type mockStore struct {
	pingErr error
}

func (m *mockStore) CreateUser(_ context.Context, _ *models.User) error { return nil }
func (m *mockStore) GetUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, storage.ErrNotFound
}
func (m *mockStore) GetUserByID(_ context.Context, _ string) (*models.User, error) {
	return nil, storage.ErrNotFound
}
func (m *mockStore) UpdateUserTier(_ context.Context, _, _ string) error { return nil }
func (m *mockStore) Ping(_ context.Context) error                        { return m.pingErr }
func (m *mockStore) Close() error                                        { return nil }

// mockProvider implements llm.Provider with a canned response.
type mockProvider struct {
	completion *llm.Completion
	err        error
	lastReq    llm.Request
}

func (m *mockProvider) Generate(_ context.Context, req llm.Request) (*llm.Completion, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.completion, nil
}

func (m *mockProvider) Model() string { return "test-model" }

type testFixture struct {
	handlers *Handlers
	router   *mux.Router
	store    storage.Store
	provider *mockProvider
	issuer   *auth.TokenIssuer
	config   *models.Config
}

func newTestFixture(t *testing.T, mutate ...func(*models.Config)) *testFixture {
	t.Helper()

	config := models.NewDefaultConfig()
	config.Security.JWTSecret = "test-secret-key"
	config.Security.BCryptCost = 4
	config.RateLimit.TierLimits = map[string]int{
		models.TierGuest:   3,
		models.TierFree:    10,
		models.TierPremium: 50,
	}
	for _, m := range mutate {
		m(config)
	}

	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	engine, err := ratelimit.NewEngine(config.RateLimit.TierLimits, config.RateLimit.Window, config.RateLimit.CleanupInterval)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	issuer, err := auth.NewTokenIssuer(config.Security.JWTSecret, config.Security.JWTIssuer, config.Security.TokenTTL)
	require.NoError(t, err)

	provider := &mockProvider{
		completion: &llm.Completion{
			Text:  "Once upon a time.",
			Model: "test-model",
			Usage: llm.Usage{PromptTokens: 5, CompletionTokens: 6, TotalTokens: 11},
		},
	}

	handlers := NewHandlers(store, engine, issuer, provider, config)
	router := SetupRoutes(handlers, config)

	return &testFixture{
		handlers: handlers,
		router:   router,
		store:    store,
		provider: provider,
		issuer:   issuer,
		config:   config,
	}
}

func (f *testFixture) do(t *testing.T, method, path string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "10.0.0.1:54321"
	for k, v := range header {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

// register creates an account and returns its bearer token.
func (f *testFixture) register(t *testing.T, email, tier string) string {
	t.Helper()

	recorder := f.do(t, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		Email:    email,
		Password: "correct horse",
		Tier:     tier,
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp.Token
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) *models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return &resp
}

func TestNewHandlers(t *testing.T) {
	f := newTestFixture(t)
	assert.NotNil(t, f.handlers)
	assert.Equal(t, f.store, f.handlers.store)
	assert.Equal(t, f.provider, f.handlers.provider)
}

func TestHealthCheck(t *testing.T) {
	f := newTestFixture(t)

	recorder := f.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["storage"])
	assert.WithinDuration(t, time.Now(), resp.Timestamp, 5*time.Second)
}

func TestHealthCheck_StorageDown(t *testing.T) {
	f := newTestFixture(t)
	f.handlers.store = &mockStore{pingErr: assert.AnError}

	recorder := f.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newTestFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/v1/generate", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	resp := decodeError(t, recorder)
	assert.Equal(t, models.ErrorCodeInvalidRequest, resp.Code)
}
