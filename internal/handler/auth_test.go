package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func TestRegisterMissingFields(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(`{"name":"Jane"}`))
	w := doRequest(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestRegisterUnknownRoleRejected(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	body := `{"name":"Jane","email":"jane@example.com","password":"secret","role":"Superuser"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	w := doRequest(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestRegisterDefaultsToSalesUser(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	store.On("CreateUser", mock.Anything).Run(func(args mock.Arguments) {
		user := args.Get(0).(*domain.User)
		user.ID = 7
		user.CreatedAt = time.Now()
	}).Return(nil)

	body := `{"name":"Jane","email":"jane@example.com","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	w := doRequest(h, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp PublicUser
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, domain.RoleSalesUser, resp.Role)

	// the hash stays server-side and the password is never stored verbatim
	created := store.Calls[0].Arguments.Get(0).(*domain.User)
	assert.NotEqual(t, "secret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret")))
	assert.NotContains(t, w.Body.String(), created.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	store.On("CreateUser", mock.Anything).Return(&pgconn.PgError{ConstraintName: "users_email_key"})

	body := `{"name":"Jane","email":"jane@example.com","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	w := doRequest(h, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Email already in use", resp.Message)
}

func TestLoginMissingFields(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(`{"email":"jane@example.com"}`))
	w := doRequest(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// An unknown email and a wrong password must produce the same status and the
// same body, otherwise the endpoint leaks which emails have accounts.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	known := testUser(domain.RoleSalesUser)
	known.PasswordHash = string(hash)

	store.On("GetUserByEmail", "nobody@example.com").Return(nil, sql.ErrNoRows)
	store.On("GetUserByEmail", known.Email).Return(known, nil)

	unknownReq := httptest.NewRequest("POST", "/api/auth/login",
		bytes.NewBufferString(`{"email":"nobody@example.com","password":"whatever"}`))
	unknownResp := doRequest(h, unknownReq)

	wrongReq := httptest.NewRequest("POST", "/api/auth/login",
		bytes.NewBufferString(`{"email":"`+known.Email+`","password":"wrong-password"}`))
	wrongResp := doRequest(h, wrongReq)

	assert.Equal(t, http.StatusUnauthorized, unknownResp.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongResp.Code)
	assert.Equal(t, unknownResp.Body.String(), wrongResp.Body.String())
}

func TestLoginIssuesWorkingToken(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := testUser(domain.RoleSalesUser)
	user.PasswordHash = string(hash)

	store.On("GetUserByEmail", user.Email).Return(user, nil)
	store.On("GetUserByID", user.ID).Return(user, nil)

	loginReq := httptest.NewRequest("POST", "/api/auth/login",
		bytes.NewBufferString(`{"email":"`+user.Email+`","password":"right-password"}`))
	loginResp := doRequest(h, loginReq)
	require.Equal(t, http.StatusOK, loginResp.Code)

	var resp struct {
		Token string     `json:"token"`
		User  PublicUser `json:"user"`
	}
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, user.Role, resp.User.Role)

	// the fresh token must open a protected route
	store.On("GetDashboardStats").Return(&domain.DashboardStats{}, nil)

	dashReq := httptest.NewRequest("GET", "/api/dashboard", nil)
	dashReq.Header.Set("Authorization", "Bearer "+resp.Token)
	dashResp := doRequest(h, dashReq)

	assert.Equal(t, http.StatusOK, dashResp.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	store := new(MockStore)
	h := newTestHandler(t, store)

	// a token that expired one second ago, i.e. issued just over 7 days back
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(domain.RoleSalesUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-7 * 24 * time.Hour)),
			Subject:   "42",
		},
	})
	tokenString, err := expired.SignedString([]byte(h.config.JWT.Secret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := doRequest(h, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	store.AssertNotCalled(t, "GetUserByID", mock.Anything)
}
