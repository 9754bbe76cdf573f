package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"fittrack/internal/store"
)

// ErrNotConnected is returned when an operation needs a Strava token and
// none is stored for the user.
var ErrNotConnected = errors.New("not connected to Strava")

// ErrExchangeFailed is returned when the authorization code exchange is
// rejected. Codes are single-use; the caller must restart authorization.
var ErrExchangeFailed = errors.New("authorization code exchange failed")

// ErrRefreshFailed is returned when the refresh token is rejected. The
// user must reauthorize from scratch.
var ErrRefreshFailed = errors.New("token refresh failed")

// expiryBuffer is how close to expiry a token may get before it is
// refreshed ahead of use.
const expiryBuffer = 60 * time.Second

// TokenStore is the persistence the manager needs. *store.Store
// satisfies it.
type TokenStore interface {
	GetStravaToken(userID string) (*store.StravaToken, error)
	SaveStravaToken(t *store.StravaToken) error
	UpdateStravaTokens(userID, accessToken, refreshToken string, expiresAt time.Time) error
	DeleteStravaToken(userID string) error
}

// Manager owns the Strava connection lifecycle for users: authorization
// code exchange, expiry-aware token retrieval with refresh, and
// disconnect. It performs at most one refresh attempt per token request;
// retry policy belongs to the caller.
type Manager struct {
	cfg    *oauth2.Config
	tokens TokenStore
	now    func() time.Time
}

// NewManager creates a Manager over an oauth2 config and token store.
func NewManager(cfg *oauth2.Config, tokens TokenStore) *Manager {
	return &Manager{
		cfg:    cfg,
		tokens: tokens,
		now:    time.Now,
	}
}

// AuthorizationURL builds the URL the user must visit to grant access.
// state is an opaque CSRF token echoed back on the callback.
func (m *Manager) AuthorizationURL(state string) string {
	return m.cfg.AuthCodeURL(state)
}

// CompleteAuthorization exchanges a one-time authorization code for a
// token pair and athlete identity, and persists the connection. A failed
// exchange is terminal for the attempt; authorization must be restarted.
func (m *Manager) CompleteAuthorization(ctx context.Context, userID, code string) (*store.StravaToken, error) {
	token, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	athlete := ExtractAthlete(token)
	record := &store.StravaToken{
		UserID:       userID,
		AthleteID:    athlete.ID,
		AthleteName:  athlete.FullName(),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		ConnectedAt:  m.now(),
	}

	if err := m.tokens.SaveStravaToken(record); err != nil {
		return nil, fmt.Errorf("saving token record: %w", err)
	}

	return record, nil
}

// ValidAccessToken returns a usable bearer token for the user,
// refreshing first when the stored token expires within 60 seconds.
// The refreshed record keeps the athlete identity captured at connect
// time; Strava's refresh response doesn't reliably include it.
func (m *Manager) ValidAccessToken(ctx context.Context, userID string) (string, error) {
	record, err := m.tokens.GetStravaToken(userID)
	if errors.Is(err, store.ErrNoToken) {
		return "", ErrNotConnected
	}
	if err != nil {
		return "", err
	}

	if record.ExpiresAt.After(m.now().Add(expiryBuffer)) {
		return record.AccessToken, nil
	}

	// Force a refresh by handing oauth2 an already-expired token.
	stale := &oauth2.Token{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		Expiry:       m.now().Add(-time.Minute),
	}
	fresh, err := m.cfg.TokenSource(ctx, stale).Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	if err := m.tokens.UpdateStravaTokens(userID, fresh.AccessToken, fresh.RefreshToken, fresh.Expiry); err != nil {
		return "", fmt.Errorf("persisting refreshed token: %w", err)
	}

	return fresh.AccessToken, nil
}

// Disconnect deletes the user's token record. Disconnecting when
// already disconnected is not an error.
func (m *Manager) Disconnect(userID string) error {
	return m.tokens.DeleteStravaToken(userID)
}

// Status reports the user's connection state for display.
func (m *Manager) Status(userID string) (connected bool, record *store.StravaToken, err error) {
	record, err = m.tokens.GetStravaToken(userID)
	if errors.Is(err, store.ErrNoToken) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, record, nil
}

// HTTPClient returns an http.Client whose requests carry a valid bearer
// token for the user, refreshing through the manager as needed.
func (m *Manager) HTTPClient(ctx context.Context, userID string) *http.Client {
	return oauth2.NewClient(ctx, &managerTokenSource{ctx: ctx, manager: m, userID: userID})
}

// managerTokenSource adapts Manager to oauth2.TokenSource so the
// standard oauth2 transport injects the Authorization header.
type managerTokenSource struct {
	ctx     context.Context
	manager *Manager
	userID  string
}

func (ts *managerTokenSource) Token() (*oauth2.Token, error) {
	access, err := ts.manager.ValidAccessToken(ts.ctx, ts.userID)
	if err != nil {
		return nil, err
	}
	// Expiry is left zero so the transport treats the token as valid;
	// freshness is the manager's job.
	return &oauth2.Token{AccessToken: access}, nil
}

// SetNowFunc overrides the manager's clock. Tests only.
func (m *Manager) SetNowFunc(now func() time.Time) {
	m.now = now
}
