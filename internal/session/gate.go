package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alltabs/alltabsd/internal/logger"
)

// Gate tracks whether a session token is held and still valid, and tells
// subscribers when that answer changes. It is built once at startup and
// passed down explicitly; remote data access is gated on Authenticated().
//
// Tokens are treated as opaque bearer credentials minted by the backend.
// The JWT envelope is only inspected, unverified, for its expiry claim:
// verification is the backend's job, expiry just saves a doomed round trip.
type Gate struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time // zero when the token carries no exp claim
	subs      []func(authenticated bool)
	log       logger.Logger
	now       func() time.Time
}

// New creates a signed-out gate.
func New(log logger.Logger) *Gate {
	return &Gate{log: log, now: time.Now}
}

// SetToken installs a session token (sign-in). Subscribers are notified if
// this transitions the gate from unauthenticated to authenticated.
func (g *Gate) SetToken(token string) {
	expiresAt := tokenExpiry(token)

	g.mu.Lock()
	was := g.authenticatedLocked()
	g.token = token
	g.expiresAt = expiresAt
	is := g.authenticatedLocked()
	subs := g.snapshotSubsLocked()
	g.mu.Unlock()

	if !expiresAt.IsZero() {
		g.log.Debug("session token installed",
			logger.String("expires_at", expiresAt.Format(time.RFC3339)))
	} else {
		g.log.Debug("session token installed without expiry claim")
	}

	if was != is {
		notify(subs, is)
	}
}

// Clear drops the token (sign-out). Subscribers are notified if this
// transitions the gate to unauthenticated.
func (g *Gate) Clear() {
	g.mu.Lock()
	was := g.authenticatedLocked()
	g.token = ""
	g.expiresAt = time.Time{}
	subs := g.snapshotSubsLocked()
	g.mu.Unlock()

	if was {
		notify(subs, false)
	}
}

// Token returns the current session token, "" when signed out.
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Authenticated reports whether a non-expired token is held.
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticatedLocked()
}

// Subscribe registers fn to run on every authenticated-state transition.
// fn runs synchronously on the goroutine that triggered the transition.
func (g *Gate) Subscribe(fn func(authenticated bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, fn)
}

func (g *Gate) authenticatedLocked() bool {
	if g.token == "" {
		return false
	}
	if g.expiresAt.IsZero() {
		return true
	}
	return g.now().Before(g.expiresAt)
}

func (g *Gate) snapshotSubsLocked() []func(bool) {
	subs := make([]func(bool), len(g.subs))
	copy(subs, g.subs)
	return subs
}

func notify(subs []func(bool), authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Returns zero for non-JWT tokens or tokens without exp.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
