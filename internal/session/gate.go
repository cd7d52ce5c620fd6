package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/brightpath/site-backend/pkg/logger"
)

// Admin routes the guard knows about.
const (
	LoginPath   = "/admin/login"
	SignupPath  = "/admin/signup"
	LandingPath = "/admin"
)

// DefaultLoginDelay is the artificial pause before a password is checked.
const DefaultLoginDelay = 500 * time.Millisecond

// State is a snapshot of a gate.
type State struct {
	LoggedIn bool `json:"loggedIn"`
	Checking bool `json:"checking"`
}

// Gates hands out per-visitor gates over shared storage.
type Gates struct {
	store  Storage
	secret *Secret
	delay  time.Duration
}

func NewGates(store Storage, secret *Secret, delay time.Duration) *Gates {
	if delay < 0 {
		delay = 0
	}
	return &Gates{store: store, secret: secret, delay: delay}
}

// For returns a fresh gate for visitor. It reports Checking until Initialize.
func (g *Gates) For(visitor string) *Gate {
	return &Gate{
		store:    g.store,
		secret:   g.secret,
		delay:    g.delay,
		visitor:  visitor,
		checking: true,
	}
}

// Gate tracks whether one visitor is the logged-in admin.
type Gate struct {
	store   Storage
	secret  *Secret
	delay   time.Duration
	visitor string

	mu       sync.RWMutex
	loggedIn bool
	checking bool
}

// Initialize reads the persisted flag. Storage failures count as logged out.
func (g *Gate) Initialize(ctx context.Context) {
	v, ok, err := g.store.Get(ctx, g.visitor, KeyLoggedIn)
	if err != nil {
		logger.Warnf("session: reading login flag for %s: %v", g.visitor, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggedIn = err == nil && ok && v == "true"
	g.checking = false
}

// Login waits the configured delay, then compares password with the shared
// secret. A cancelled ctx aborts the attempt and returns false.
func (g *Gate) Login(ctx context.Context, password string) bool {
	if g.delay > 0 {
		t := time.NewTimer(g.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return false
		case <-t.C:
		}
	}
	if !g.secret.Matches(password) {
		return false
	}

	g.mu.Lock()
	g.loggedIn = true
	g.checking = false
	g.mu.Unlock()

	if err := g.store.Set(ctx, g.visitor, KeyLoggedIn, "true"); err != nil {
		logger.Warnf("session: persisting login flag for %s: %v", g.visitor, err)
	}
	return true
}

// Logout clears the flag in memory and in storage.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.loggedIn = false
	g.checking = false
	g.mu.Unlock()

	if err := g.store.Delete(ctx, g.visitor, KeyLoggedIn); err != nil {
		logger.Warnf("session: clearing login flag for %s: %v", g.visitor, err)
	}
}

func (g *Gate) LoggedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loggedIn
}

func (g *Gate) Checking() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.checking
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return State{LoggedIn: g.loggedIn, Checking: g.checking}
}

// RememberPath stores the protected path to return to after login.
func (g *Gate) RememberPath(ctx context.Context, path string) {
	if !safePath(path) {
		return
	}
	if err := g.store.Set(ctx, g.visitor, KeyRedirectAfter, path); err != nil {
		logger.Warnf("session: remembering %q for %s: %v", path, g.visitor, err)
	}
}

// TakeRedirect returns the remembered path, or LandingPath, and forgets it.
func (g *Gate) TakeRedirect(ctx context.Context) string {
	path, ok, err := g.store.Get(ctx, g.visitor, KeyRedirectAfter)
	if err != nil {
		logger.Warnf("session: reading redirect for %s: %v", g.visitor, err)
	}
	if ok {
		if err := g.store.Delete(ctx, g.visitor, KeyRedirectAfter); err != nil {
			logger.Warnf("session: clearing redirect for %s: %v", g.visitor, err)
		}
	}
	if err != nil || !ok || !safePath(path) {
		return LandingPath
	}
	return path
}

// safePath accepts only same-origin absolute paths.
func safePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.ContainsAny(p, "\\\r\n")
}
