package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	session Session
	err     error
}

func (s stubVerifier) Authenticate(ctx context.Context, username, password string) (Session, error) {
	if s.err != nil {
		return Session{}, s.err
	}
	return s.session, nil
}

func newTestAuthHandler(t *testing.T, verifier CredentialsVerifier) *Handler {
	t.Helper()
	policy, err := rbac.NewPolicy()
	assert.NoError(t, err)
	return NewHandler(verifier, NewTokens("test-secret", time.Hour), policy, time.Hour)
}

func TestLogin(t *testing.T) {
	session := Session{UserID: 1, UserUID: "uid-1", Username: "jdoe", Role: rbac.RoleMST}
	handler := newTestAuthHandler(t, stubVerifier{session: session})

	body := strings.NewReader(`{"username":"jdoe","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)

	var dto SessionDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "jdoe", dto.Username)
	assert.Equal(t, "MST", dto.Role)
	assert.Len(t, dto.NavItems, 2)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{err: ErrInvalidCredentials})

	body := strings.NewReader(`{"username":"jdoe","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_MissingFields(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})

	body := strings.NewReader(`{"username":"jdoe"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestCurrentSession(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})
	session := Session{UserID: 1, UserUID: "uid-1", Username: "jdoe", Role: rbac.RoleAccounts}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req = req.WithContext(WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	handler.CurrentSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var dto SessionDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "uid-1", dto.UserUid)
	assert.Equal(t, "ACCOUNTS", dto.Role)
}

func TestCurrentSession_Unauthenticated(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	handler.CurrentSession(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNavigation_OrderedByRole(t *testing.T) {
	handler := newTestAuthHandler(t, stubVerifier{})
	session := Session{UserID: 1, UserUID: "uid-1", Username: "jdoe", Role: rbac.RoleRM}

	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	req = req.WithContext(WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	handler.Navigation(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var items []NavItemDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Dashboard", "Clients", "Tickets", "Quotations"}, labels)
}
