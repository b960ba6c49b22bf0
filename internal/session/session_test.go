package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/credential"
	"github.com/muynuddinr/work-management-system/internal/model"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func persistedUser(t *testing.T, user model.User) string {
	t.Helper()
	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshaling user: %v", err)
	}
	return string(data)
}

func TestInitializeAdoptsPersistedSessionWithoutNetwork(t *testing.T) {
	// Any network call during hydration fails the test.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request during Initialize: %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	creds := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	admin := model.User{ID: "u1", Name: "Asha", Role: model.RoleAdmin}
	if err := creds.Save(token, persistedUser(t, admin)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	if !m.Loading() {
		t.Fatal("Loading() = false before Initialize")
	}
	if m.Authenticated() {
		t.Fatal("Authenticated() = true while loading")
	}

	m.Initialize()

	if m.Loading() {
		t.Error("Loading() = true after Initialize")
	}
	if !m.Authenticated() {
		t.Fatal("Authenticated() = false after hydrating a valid session")
	}
	if got := m.User(); got == nil || got.Role != model.RoleAdmin {
		t.Errorf("User() = %+v, want admin u1", got)
	}
	if m.Token() != token {
		t.Errorf("Token() = %q, want persisted token", m.Token())
	}
}

func TestInitializeDiscardsExpiredToken(t *testing.T) {
	creds := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(-time.Hour))
	if err := creds.Save(token, persistedUser(t, model.User{ID: "u1"})); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(nil, creds, nil)
	m.Initialize()

	if m.Authenticated() {
		t.Error("Authenticated() = true with expired token")
	}
	if _, _, err := creds.Load(); err != credential.ErrNotFound {
		t.Errorf("expired session not cleared from store: %v", err)
	}
}

func TestInitializeDiscardsCorruptUser(t *testing.T) {
	creds := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := creds.Save(token, "{not json"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(nil, creds, nil)
	m.Initialize()

	if m.Authenticated() {
		t.Error("Authenticated() = true with corrupt persisted user")
	}
	if _, _, err := creds.Load(); err != credential.ErrNotFound {
		t.Errorf("corrupt session not cleared from store: %v", err)
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	creds := credential.NewMemoryStore()
	m := NewManager(nil, creds, nil)

	m.Initialize()
	if m.Loading() {
		t.Fatal("Loading() = true after first Initialize")
	}

	// A session persisted after the first call must not be picked up.
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := creds.Save(token, persistedUser(t, model.User{ID: "u1"})); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m.Initialize()

	if m.Authenticated() {
		t.Error("repeat Initialize hydrated a session")
	}
}

func TestLoginSuccessPersistsAndAdopts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Asha","role":"intern"}}`))
	}))
	defer srv.Close()

	creds := credential.NewMemoryStore()
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !m.Authenticated() {
		t.Fatal("Authenticated() = false after login")
	}
	token, userJSON, err := creds.Load()
	if err != nil {
		t.Fatalf("Load after login: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("persisted token = %q", token)
	}
	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID != "u1" {
		t.Errorf("persisted user = %q (%v)", userJSON, err)
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	creds := credential.NewMemoryStore()
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()

	err := m.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("Login succeeded with rejected credentials")
	}
	if !api.IsValidationError(err) {
		t.Errorf("error lost its type through wrapping: %v", err)
	}

	if m.Authenticated() {
		t.Error("Authenticated() = true after failed login")
	}
	if m.Token() != "" || m.User() != nil {
		t.Error("failed login left partial state")
	}
	if _, _, err := creds.Load(); err != credential.ErrNotFound {
		t.Errorf("failed login wrote to the store: %v", err)
	}
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","role":"intern"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	creds := credential.NewMemoryStore()
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	m.Logout(context.Background())

	if m.Authenticated() {
		t.Error("Authenticated() = true after logout")
	}
	if _, _, err := creds.Load(); err != credential.ErrNotFound {
		t.Errorf("logout left persisted session: %v", err)
	}
}

func TestForceLogoutClearsLocalState(t *testing.T) {
	creds := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := creds.Save(token, persistedUser(t, model.User{ID: "u1", Role: model.RoleIntern})); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(nil, creds, nil)
	m.Initialize()
	if !m.Authenticated() {
		t.Fatal("setup: not authenticated")
	}

	m.ForceLogout()

	if m.Authenticated() || m.User() != nil || m.Token() != "" {
		t.Error("ForceLogout left session state behind")
	}
}

func TestUpdatePasswordAdoptsFreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"tok-old","user":{"_id":"u1","name":"Asha","role":"intern"}}`))
		case "/auth/updatepassword":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["currentPassword"] != "old" || body["newPassword"] != "new" {
				t.Errorf("password body = %v", body)
			}
			w.Write([]byte(`{"token":"tok-new","user":{"_id":"u1"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	creds := credential.NewMemoryStore()
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()

	if err := m.Login(context.Background(), "a@b.c", "old"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.UpdatePassword(context.Background(), "old", "new"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if m.Token() != "tok-new" {
		t.Errorf("Token() = %q, want tok-new", m.Token())
	}
	token, _, err := creds.Load()
	if err != nil || token != "tok-new" {
		t.Errorf("persisted token = %q (%v), want tok-new", token, err)
	}
	if got := m.User(); got == nil || got.Name != "Asha" {
		t.Errorf("User() = %+v, want unchanged profile", got)
	}
}

// brokenStore wraps a working store but fails every Save, standing in
// for a locked or unavailable keyring backend.
type brokenStore struct {
	credential.Store
}

func (s *brokenStore) Save(token, userJSON string) error {
	return errors.New("keyring write failed")
}

func TestUpdateUserFailedPersistLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"u1","name":"New Name","role":"intern"}`))
	}))
	defer srv.Close()

	inner := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := inner.Save(token, persistedUser(t, model.User{ID: "u1", Name: "Asha", Role: model.RoleIntern})); err != nil {
		t.Fatalf("Save: %v", err)
	}

	creds := &brokenStore{Store: inner}
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()
	if !m.Authenticated() {
		t.Fatal("setup: not authenticated")
	}

	err := m.UpdateUser(context.Background(), api.UpdateDetailsPayload{Name: "New Name"})
	if err == nil {
		t.Fatal("UpdateUser succeeded with a broken store")
	}
	if got := m.User(); got == nil || got.Name != "Asha" {
		t.Errorf("User() = %+v, want original profile after failed persist", got)
	}
}

func TestUpdatePasswordFailedPersistKeepsOldToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-new","user":{"_id":"u1"}}`))
	}))
	defer srv.Close()

	inner := credential.NewMemoryStore()
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := inner.Save(token, persistedUser(t, model.User{ID: "u1", Role: model.RoleIntern})); err != nil {
		t.Fatalf("Save: %v", err)
	}

	creds := &brokenStore{Store: inner}
	m := NewManager(api.NewClient(srv.URL, creds, nil), creds, nil)
	m.Initialize()

	err := m.UpdatePassword(context.Background(), "old", "new")
	if err == nil {
		t.Fatal("UpdatePassword succeeded with a broken store")
	}
	if m.Token() != token {
		t.Errorf("Token() = %q, want original token after failed persist", m.Token())
	}
}

func TestTokenExpired(t *testing.T) {
	if tokenExpired(signedToken(t, time.Now().Add(time.Hour))) {
		t.Error("future token reported expired")
	}
	if !tokenExpired(signedToken(t, time.Now().Add(-time.Minute))) {
		t.Error("past token reported valid")
	}
	// Opaque tokens are not the client's to judge.
	if tokenExpired("opaque-session-id") {
		t.Error("opaque token reported expired")
	}
}
