package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/mini-crm/backend/internal/config"
	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) GetUserByID(id int64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockStore) CreateLead(lead *domain.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockStore) GetLeadByID(id int64) (*domain.Lead, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockStore) ListLeads(filter domain.LeadFilter) ([]*domain.Lead, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) UpdateLead(lead *domain.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockStore) DeleteLead(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) CreateFollowup(followup *domain.Followup) error {
	args := m.Called(followup)
	return args.Error(0)
}

func (m *MockStore) GetFollowupsByLead(leadID int64) ([]*domain.Followup, error) {
	args := m.Called(leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Followup), args.Error(1)
}

func (m *MockStore) GetDashboardStats() (*domain.DashboardStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func newTestHandler(t *testing.T, store Store) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 604800
	cfg.CORS.AllowedOrigins = []string{"*"}

	h, err := NewHandler(cfg, store, nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:           42,
		Name:         "Jane Seller",
		Email:        "jane@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// authorize issues a real token for user and teaches the store to resolve it.
func authorize(t *testing.T, h *Handler, store *MockStore, user *domain.User) string {
	t.Helper()

	token, err := h.issueToken(user)
	require.NoError(t, err)
	store.On("GetUserByID", user.ID).Return(user, nil)

	return "Bearer " + token
}

func doRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Mux.ServeHTTP(w, req)
	return w
}
