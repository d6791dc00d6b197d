package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-otp-auth/internal/application/account"
	"github.com/go-otp-auth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) RequestCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAccountSvc) Signup(ctx context.Context, req account.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountSvc) Login(ctx context.Context, req account.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(1).(*domain.User); u != nil {
		return args.String(0), u, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}
func (m *mockAccountSvc) ResetPassword(ctx context.Context, req account.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func postJSON(t *testing.T, target string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// --- RequestCode ---

func TestRequestCode_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/request-code", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.RequestCode(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestCode_MissingEmail(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	r := postJSON(t, "/v1/auth/request-code", map[string]string{})
	rr := httptest.NewRecorder()
	h.RequestCode(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRequestCode_HappyPath(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("RequestCode", mock.Anything, "a@b.com").Return(nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/request-code", map[string]string{"email": "a@b.com"})
	rr := httptest.NewRecorder()
	h.RequestCode(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

// --- Signup ---

func TestSignup_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	// code too short
	r := postJSON(t, "/v1/auth/signup", account.SignupRequest{
		Email: "a@b.com", Password: "secret-pass", Code: "123",
	})
	rr := httptest.NewRecorder()
	h.Signup(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSignup_InvalidCode_MapsToUnauthorized(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/signup", account.SignupRequest{
		Email: "a@b.com", Password: "secret-pass", Code: "123456",
	})
	rr := httptest.NewRecorder()
	h.Signup(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSignup_Duplicate_MapsToConflict(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/signup", account.SignupRequest{
		Email: "a@b.com", Password: "secret-pass", Code: "123456",
	})
	rr := httptest.NewRecorder()
	h.Signup(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignup_HappyPath(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).
		Return(&domain.User{Email: "a@b.com", UserID: "01ARZ"}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/signup", account.SignupRequest{
		Email: "a@b.com", Password: "secret-pass", Code: "123456",
	})
	rr := httptest.NewRecorder()
	h.Signup(rr, r)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "a@b.com", resp.User.Email)
	svc.AssertExpectations(t)
}

// --- Login ---

func TestLogin_UnknownEmail_MapsToNotFound(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, domain.ErrNotFound)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", account.LoginRequest{Email: "x@x.com", Password: "whatever"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLogin_WrongPassword_MapsToUnauthorized(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", account.LoginRequest{Email: "a@b.com", Password: "wrong"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_HappyPath_ReturnsBearer(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Login", mock.Anything, mock.MatchedBy(func(req account.LoginRequest) bool {
		// The handler stamps the caller address onto the request.
		return req.Email == "a@b.com" && req.RemoteIP != ""
	})).Return("bearer-token", &domain.User{Email: "a@b.com"}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", account.LoginRequest{Email: "a@b.com", Password: "right"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "bearer-token", resp.Bearer)
	svc.AssertExpectations(t)
}

// --- ResetPassword ---

func TestResetPassword_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&mockAccountSvc{})
	r := postJSON(t, "/v1/auth/reset-password", account.ResetPasswordRequest{
		Email: "a@b.com", Code: "123456", // new_password missing
	})
	rr := httptest.NewRecorder()
	h.ResetPassword(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestResetPassword_DependencyFailure_IsGeneric(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("ResetPassword", mock.Anything, mock.Anything).Return(domain.ErrDependency)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/reset-password", account.ResetPasswordRequest{
		Email: "a@b.com", Code: "123456", NewPassword: "brand-new-pass",
	})
	rr := httptest.NewRecorder()
	h.ResetPassword(rr, r)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "service dependency failed", resp.Error)
}

func TestResetPassword_HappyPath(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("ResetPassword", mock.Anything, mock.Anything).Return(nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/reset-password", account.ResetPasswordRequest{
		Email: "a@b.com", Code: "123456", NewPassword: "brand-new-pass",
	})
	rr := httptest.NewRecorder()
	h.ResetPassword(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
