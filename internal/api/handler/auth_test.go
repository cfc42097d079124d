package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"civicgo/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestRegister_Success verifies the happy path: a fresh email yields a
// stored user (with a hashed password) and a usable bearer token.
func TestRegister_Success(t *testing.T) {
	// Arrange
	m := new(MockStorage)
	r, authSvc := setupRouter(m)

	var stored *models.User
	m.On("GetUserByEmail", "new@example.com").Return(nil, nil)
	m.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.User)
		stored.ID = "user-1" // the GORM hook would fill this
	}).Return(nil)

	body := map[string]string{
		"email":    "new@example.com",
		"phone":    "+380501112233",
		"password": "s3cret-pass",
		"name":     "Olena",
	}

	// Act
	w := performRequest(t, r, http.MethodPost, "/auth/register", "", body)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "citizen", resp.User.Role, "role defaults to citizen")
	assert.Empty(t, resp.User.Password, "password hash must never be serialized")

	// The stored password is a bcrypt hash of the plaintext, not the plaintext
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))

	// The token subject is the registered user's id
	claims, err := authSvc.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	m.AssertExpectations(t)
}

// TestRegister_DuplicateEmail verifies that a second registration with the
// same email fails with 400 and never reaches the store's create.
func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	m := new(MockStorage)
	r, _ := setupRouter(m)
	m.On("GetUserByEmail", "taken@example.com").Return(citizenUser(), nil)

	body := map[string]string{
		"email":    "taken@example.com",
		"password": "whatever",
		"name":     "Second",
	}

	// Act
	w := performRequest(t, r, http.MethodPost, "/auth/register", "", body)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
	m.AssertNotCalled(t, "CreateUser", mock.Anything)
}

// TestLogin_UniformError verifies that unknown email and wrong password
// produce identical 401 responses, so callers cannot tell which failed.
func TestLogin_UniformError(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	known := citizenUser()
	known.Password = string(hash)

	tests := []struct {
		name     string
		email    string
		password string
		found    *models.User
	}{
		{"unknown email", "nobody@example.com", "right-password", nil},
		{"wrong password", known.Email, "wrong-password", known},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			m := new(MockStorage)
			r, _ := setupRouter(m)
			if tt.found != nil {
				m.On("GetUserByEmail", tt.email).Return(tt.found, nil)
			} else {
				m.On("GetUserByEmail", tt.email).Return(nil, nil)
			}

			// Act
			w := performRequest(t, r, http.MethodPost, "/auth/login", "",
				map[string]string{"email": tt.email, "password": tt.password})

			// Assert
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		})
	}
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1], "both failures must be indistinguishable")
}

// TestLogin_Success verifies that valid credentials yield a token whose
// subject is the stored user id.
func TestLogin_Success(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := citizenUser()
	user.Password = string(hash)

	m := new(MockStorage)
	r, authSvc := setupRouter(m)
	m.On("GetUserByEmail", user.Email).Return(user, nil)

	// Act
	w := performRequest(t, r, http.MethodPost, "/auth/login", "",
		map[string]string{"email": user.Email, "password": "right-password"})

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := authSvc.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
}

// TestMe returns the resolved profile of the token's subject.
func TestMe(t *testing.T) {
	// Arrange
	user := citizenUser()
	m := new(MockStorage)
	r, authSvc := setupRouter(m)
	m.On("GetUserByID", user.ID).Return(user, nil)

	token := issueToken(t, authSvc, user.ID, user.Role)

	// Act
	w := performRequest(t, r, http.MethodGet, "/auth/me", token, nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Email)
	assert.NotContains(t, w.Body.String(), user.Password)
}

// TestAuthMiddleware_Rejections covers the 401 family: no token, garbage
// token, expired token and a token for a deleted account.
func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		deletedUser bool
	}{
		{"missing token", "", false},
		{"garbage token", "not-a-token", false},
		{"expired token", expiredToken(t, "citizen-1", "citizen"), false},
		{"deleted account", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			m := new(MockStorage)
			r, authSvc := setupRouter(m)

			token := tt.token
			if tt.deletedUser {
				token = issueToken(t, authSvc, "ghost-user", "citizen")
				m.On("GetUserByID", "ghost-user").Return(nil, nil)
			}

			// Act
			w := performRequest(t, r, http.MethodGet, "/auth/me", token, nil)

			// Assert
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
