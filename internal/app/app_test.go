package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/config"
	"github.com/muynuddinr/work-management-system/internal/credential"
	"github.com/muynuddinr/work-management-system/internal/model"
	"github.com/muynuddinr/work-management-system/internal/session"
	"github.com/muynuddinr/work-management-system/internal/store"
	"go.uber.org/zap"
)

// newAuthenticatedApp builds a root model with a hydrated session and a
// fake backend, sized and ready on the dashboard view.
func newAuthenticatedApp(t *testing.T) Model {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notifications":
			w.Write([]byte(`{"success":true,"data":{"notifications":[],"unreadCount":0}}`))
		case "/dashboard/intern":
			w.Write([]byte(`{"success":true,"data":{}}`))
		case "/auth/logout":
			w.Write([]byte(`{"success":true,"data":{}}`))
		default:
			w.Write([]byte(`{"success":true,"data":[]}`))
		}
	}))
	t.Cleanup(srv.Close)

	creds := credential.NewMemoryStore()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	userJSON, _ := json.Marshal(model.User{ID: "u1", Name: "Asha", Role: model.RoleIntern})
	if err := creds.Save(token, string(userJSON)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cache, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	client := api.NewClient(srv.URL, creds, nil)
	sess := session.NewManager(client, creds, nil)
	sess.Initialize()
	if !sess.Authenticated() {
		t.Fatal("setup: session not authenticated")
	}

	cfg := &config.Config{BaseURL: srv.URL, PollIntervalSec: 3600, SearchDebounceMs: 300}
	m := New(cfg, client, sess, cache, zap.NewNop())

	mdl, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	root := mdl.(Model)
	if root.view != viewDashboard {
		t.Fatalf("view after resize = %d, want dashboard", root.view)
	}
	t.Cleanup(func() { root.quit() })
	return root
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGlobalKeysOpenOverlays(t *testing.T) {
	m := newAuthenticatedApp(t)

	mdl, _ := m.Update(runes("N"))
	if got := mdl.(Model).overlay; got != overlayNotifications {
		t.Errorf("overlay after N = %d, want notifications", got)
	}

	mdl, _ = m.Update(runes("/"))
	if got := mdl.(Model).overlay; got != overlaySearch {
		t.Errorf("overlay after / = %d, want search", got)
	}

	mdl, _ = m.Update(runes("w"))
	if got := mdl.(Model).overlay; got != overlayWorklog {
		t.Errorf("overlay after w = %d, want worklog", got)
	}

	// Unbound keys fall through to the active view.
	mdl, _ = m.Update(runes("x"))
	if got := mdl.(Model).overlay; got != overlayNone {
		t.Errorf("overlay after unbound key = %d, want none", got)
	}
}

func TestQuitKeyStopsBackgroundWork(t *testing.T) {
	m := newAuthenticatedApp(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit the program")
	}
}

func TestLogoutKeyReturnsToLogin(t *testing.T) {
	m := newAuthenticatedApp(t)

	mdl, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	root := mdl.(Model)
	if root.view != viewLogin {
		t.Errorf("view after ctrl+l = %d, want login", root.view)
	}
	if m.sess.Authenticated() {
		t.Error("session still authenticated after logout")
	}
}
