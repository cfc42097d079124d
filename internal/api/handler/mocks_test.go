package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicgo/backend/internal/analytics"
	"civicgo/backend/internal/api/handler"
	"civicgo/backend/internal/auth"
	"civicgo/backend/internal/complaint"
	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// MockStorage is a comprehensive mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Complaint operations
func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) FindComplaints(status, category string, limit int) ([]models.Complaint, error) {
	args := m.Called(status, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) FindComplaintsNearby(lat, lon, radiusMeters float64, limit int) ([]models.Complaint, error) {
	args := m.Called(lat, lon, radiusMeters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) FindComplaintsByUser(userID string, limit int) ([]models.Complaint, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaintFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

// Aggregates
func (m *MockStorage) CountComplaints(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CategoryBreakdown() ([]models.CategoryCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

// Categories
func (m *MockStorage) ListCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockStorage) SeedDefaultCategories() error {
	args := m.Called()
	return args.Error(0)
}

// Geo index
func (m *MockStorage) EnsureGeoIndex() error {
	args := m.Called()
	return args.Error(0)
}

// Events
func (m *MockStorage) PublishComplaintEvent(event models.ComplaintEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStorage) SubscribeComplaintEvents(ctx context.Context) (<-chan models.ComplaintEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan models.ComplaintEvent), args.Error(1)
}

// setupRouter wires real services over the mock storage, exactly like main does
// over the real one, and returns the gin engine plus the auth service for
// minting test tokens.
func setupRouter(m *MockStorage) (*gin.Engine, *auth.Service) {
	gin.SetMode(gin.TestMode)

	authSvc := auth.NewService(m, testSecret, config.TokenTTL)
	h := handler.NewHandler(authSvc, complaint.NewService(m), analytics.NewService(m), m)

	r := gin.New()
	h.RegisterRoutes(r)
	return r, authSvc
}

// performRequest runs one request through the engine; a non-empty token is
// sent as a bearer Authorization header.
func performRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// issueToken mints a valid token for the given user through the real auth service.
func issueToken(t *testing.T, authSvc *auth.Service, userID, role string) string {
	t.Helper()
	token, err := authSvc.IssueToken(userID, role)
	require.NoError(t, err)
	return token
}

// expiredToken mints a token whose exp claim is already in the past.
func expiredToken(t *testing.T, userID, role string) string {
	t.Helper()
	svc := auth.NewService(nil, testSecret, -time.Hour)
	token, err := svc.IssueToken(userID, role)
	require.NoError(t, err)
	return token
}

func citizenUser() *models.User {
	return &models.User{
		ID:        "citizen-1",
		Email:     "citizen@example.com",
		Phone:     "+380501112233",
		Password:  "$2a$10$not-used-here",
		Role:      config.RoleCitizen,
		Name:      "Olena Citizen",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func adminUser() *models.User {
	return &models.User{
		ID:        "admin-1",
		Email:     "admin@example.com",
		Role:      config.RoleAdmin,
		Name:      "City Admin",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
