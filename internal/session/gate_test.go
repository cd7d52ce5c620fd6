package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStorage struct{}

var errDown = errors.New("storage down")

func (brokenStorage) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errDown
}
func (brokenStorage) Set(context.Context, string, string, string) error { return errDown }
func (brokenStorage) Delete(context.Context, string, string) error       { return errDown }

func newTestGates(t *testing.T, store Storage) *Gates {
	t.Helper()
	secret, err := NewSecret("correct horse", "")
	require.NoError(t, err)
	return NewGates(store, secret, 0)
}

func TestGate_Scenario(t *testing.T) {
	store := NewMemoryStorage(0)
	gate := newTestGates(t, store).For("visitor-1")
	ctx := context.Background()

	assert.Equal(t, State{Checking: true}, gate.State())

	gate.Initialize(ctx)
	assert.Equal(t, State{}, gate.State())

	assert.False(t, gate.Login(ctx, "wrong"))
	assert.Equal(t, State{}, gate.State())
	_, ok, _ := store.Get(ctx, "visitor-1", KeyLoggedIn)
	assert.False(t, ok)

	assert.True(t, gate.Login(ctx, "correct horse"))
	assert.True(t, gate.LoggedIn())
	v, ok, _ := store.Get(ctx, "visitor-1", KeyLoggedIn)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	gate.Logout(ctx)
	assert.False(t, gate.LoggedIn())
	_, ok, _ = store.Get(ctx, "visitor-1", KeyLoggedIn)
	assert.False(t, ok)
}

func TestGate_InitializeRestoresPersistedFlag(t *testing.T) {
	store := NewMemoryStorage(0)
	gates := newTestGates(t, store)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "v", KeyLoggedIn, "true"))
	require.NoError(t, store.Set(ctx, "other", KeyLoggedIn, "yes"))

	g := gates.For("v")
	g.Initialize(ctx)
	assert.True(t, g.LoggedIn())

	other := gates.For("other")
	other.Initialize(ctx)
	assert.False(t, other.LoggedIn())
	assert.False(t, other.Checking())
}

func TestGate_ToleratesBrokenStorage(t *testing.T) {
	gate := newTestGates(t, brokenStorage{}).For("v")
	ctx := context.Background()

	gate.Initialize(ctx)
	assert.Equal(t, State{}, gate.State())

	assert.True(t, gate.Login(ctx, "correct horse"))
	assert.True(t, gate.LoggedIn())

	gate.Logout(ctx)
	assert.False(t, gate.LoggedIn())
	assert.Equal(t, LandingPath, gate.TakeRedirect(ctx))
}

func TestGate_LoginDelay(t *testing.T) {
	secret, err := NewSecret("pw", "")
	require.NoError(t, err)
	gate := NewGates(NewMemoryStorage(0), secret, 40*time.Millisecond).For("v")

	start := time.Now()
	assert.True(t, gate.Login(context.Background(), "pw"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gate.Logout(context.Background())
	assert.False(t, gate.Login(ctx, "pw"))
	assert.False(t, gate.LoggedIn())
}

func TestGates_NegativeDelayClamped(t *testing.T) {
	g := NewGates(NewMemoryStorage(0), nil, -time.Second)
	assert.Zero(t, g.delay)
	assert.False(t, g.For("v").Login(context.Background(), "anything"))
}

func TestMemoryStorage_Expiry(t *testing.T) {
	m := NewMemoryStorage(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "v", KeyLoggedIn, "true"))
	_, ok, _ := m.Get(ctx, "v", KeyLoggedIn)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = m.Get(ctx, "v", KeyLoggedIn)
	assert.False(t, ok)
}
