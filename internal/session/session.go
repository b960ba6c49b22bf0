// Package session holds the process-wide authentication state: the
// current user, the bearer token and the initial-load flag. A Manager
// is constructed explicitly and passed down, never reached as a global,
// so tests can build isolated sessions.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/credential"
	"github.com/muynuddinr/work-management-system/internal/model"
)

// Manager owns the session lifecycle: hydration from the keyring at
// startup, login/register/logout, and profile updates. The invariant
// throughout is that user and token are set together or cleared
// together; partial state never survives a failed operation.
type Manager struct {
	client *api.Client
	creds  credential.Store
	logger *zap.Logger

	mu      sync.Mutex
	user    *model.User
	token   string
	loading bool

	initOnce sync.Once
}

// NewManager creates a Manager in the loading state. Initialize must be
// called before any consumer reads User for authorization decisions.
func NewManager(client *api.Client, creds credential.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client:  client,
		creds:   creds,
		logger:  logger,
		loading: true,
	}
}

// Initialize hydrates the session from the keyring. It makes no network
// call: a persisted token+user pair is adopted as-is, except that a JWT
// whose expiry has already passed is discarded along with the stored
// user. The loading flag is cleared exactly once, on the first call;
// repeat calls are no-ops.
func (m *Manager) Initialize() {
	m.initOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
		}()

		token, userJSON, err := m.creds.Load()
		if err != nil {
			if err != credential.ErrNotFound {
				m.logger.Warn("loading persisted session", zap.Error(err))
			}
			return
		}
		if token == "" || userJSON == "" {
			return
		}

		if tokenExpired(token) {
			m.logger.Info("persisted token expired, clearing session")
			if err := m.creds.Clear(); err != nil {
				m.logger.Warn("clearing expired session", zap.Error(err))
			}
			return
		}

		var user model.User
		if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
			m.logger.Warn("decoding persisted user", zap.Error(err))
			if err := m.creds.Clear(); err != nil {
				m.logger.Warn("clearing corrupt session", zap.Error(err))
			}
			return
		}

		m.mu.Lock()
		m.user = &user
		m.token = token
		m.mu.Unlock()
	})
}

// Login authenticates with the backend. On success the token and user
// are persisted and adopted atomically; on failure nothing changes and
// the returned error carries a user-displayable message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.client.Auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", api.UserMessage(err), err)
	}
	return m.adopt(result.Token, result.User)
}

// Register creates an account and adopts the returned session under the
// same contract as Login.
func (m *Manager) Register(ctx context.Context, payload api.RegisterPayload) error {
	result, err := m.client.Auth.Register(ctx, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", api.UserMessage(err), err)
	}
	return m.adopt(result.Token, result.User)
}

// Logout invalidates the server-side session on a best-effort basis and
// unconditionally clears persisted and in-memory state. It never fails:
// a dead network must not trap the user in an authenticated UI.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Auth.Logout(ctx); err != nil {
		m.logger.Warn("remote logout failed", zap.Error(err))
	}
	m.clear()
}

// ForceLogout clears local state without a remote call. Wired to the
// API client's 401 hook, which has already cleared the keyring.
func (m *Manager) ForceLogout() {
	m.clear()
}

// UpdateUser updates profile details. The server's returned
// representation replaces the local record wholesale; on failure the
// session is untouched.
func (m *Manager) UpdateUser(ctx context.Context, payload api.UpdateDetailsPayload) error {
	user, err := m.client.Auth.UpdateDetails(ctx, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", api.UserMessage(err), err)
	}

	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if err := m.persist(token, *user); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	return nil
}

// UpdatePassword changes the password and adopts the fresh token the
// backend issues with it.
func (m *Manager) UpdatePassword(ctx context.Context, current, next string) error {
	result, err := m.client.Auth.UpdatePassword(ctx, current, next)
	if err != nil {
		return fmt.Errorf("%s: %w", api.UserMessage(err), err)
	}

	m.mu.Lock()
	user := m.user
	m.mu.Unlock()

	if user == nil {
		return nil
	}

	if err := m.persist(result.Token, *user); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = result.Token
	m.mu.Unlock()

	return nil
}

// User returns the current user, or nil when unauthenticated. Callers
// must check Loading first; the value is meaningless during hydration.
func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Loading reports whether initial hydration is still pending.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Authenticated reports whether a session is present. False while
// loading.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loading && m.user != nil && m.token != ""
}

// adopt persists and installs a new session.
func (m *Manager) adopt(token string, user model.User) error {
	if err := m.persist(token, user); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	u := user
	m.user = &u
	m.mu.Unlock()

	return nil
}

// persist writes the token and serialized user to the keyring.
func (m *Manager) persist(token string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user for storage: %w", err)
	}
	if err := m.creds.Save(token, string(userJSON)); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// clear removes persisted and in-memory state. Keyring errors are
// logged, not returned: local logout always succeeds.
func (m *Manager) clear() {
	if err := m.creds.Clear(); err != nil {
		m.logger.Warn("clearing persisted session", zap.Error(err))
	}

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
}

// tokenExpired reports whether token is a JWT with an exp claim in the
// past. Parsing is unverified: the client only inspects expiry, it
// never trusts claims for authorization. Opaque tokens pass through.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
