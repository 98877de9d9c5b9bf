package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type fakeRepo struct {
	accounts map[string]*Account
}

func (f *fakeRepo) FindByUsername(ctx context.Context, username string) (*Account, error) {
	if a, ok := f.accounts[username]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func testHandler(t *testing.T) (*Handler, *shared.SessionManager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeRepo{accounts: map[string]*Account{
		"jefa": {ID: 1, EmployeeID: 10, Username: "jefa", PasswordHash: string(hash), Role: RoleAdmin, Status: shared.StatusActive},
		"baja": {ID: 2, EmployeeID: 11, Username: "baja", PasswordHash: string(hash), Role: RoleStandard, Status: shared.StatusInactive},
	}}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "gestor_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	return NewHandler(logger, NewService(repo), sessions, csrf), sessions
}

func doLogin(t *testing.T, h *Handler, sessions *shared.SessionManager, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	sess, err := sessions.Load(r.Context(), r)
	require.NoError(t, err)
	r = r.WithContext(shared.ContextWithSession(r.Context(), sess))
	w := httptest.NewRecorder()
	h.handleLogin(w, r)
	return w
}

func TestLoginSuccess(t *testing.T) {
	h, sessions := testHandler(t)

	w := doLogin(t, h, sessions, `{"username":"jefa","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "jefa", resp.User.Username)
	require.Equal(t, RoleAdmin, resp.User.Role)
	require.NotEmpty(t, resp.CSRFToken)
	require.Empty(t, resp.User.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	h, sessions := testHandler(t)

	w := doLogin(t, h, sessions, `{"username":"jefa","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	h, sessions := testHandler(t)

	w := doLogin(t, h, sessions, `{"username":"baja","password":"correct-horse"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	h, sessions := testHandler(t)

	w := doLogin(t, h, sessions, `{"username":"nadie","password":"correct-horse"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
