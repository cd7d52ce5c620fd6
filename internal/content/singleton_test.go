package content

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSingleton_GetMaterializesDefaultsOnce(t *testing.T) {
	cat, _ := newCatalog(t)
	stats := cat.MustSingleton(Stats)
	ctx := context.Background()

	first, err := stats.Get(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID())
	assert.Equal(t, int64(150), first["projectsCompleted"])

	second, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
}

func TestSingleton_ConcurrentFirstGet(t *testing.T) {
	cat, _ := newCatalog(t)
	settings := cat.MustSingleton(Settings)
	ctx := context.Background()

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := settings.Get(ctx)
			if err == nil {
				ids[i] = rec.ID()
			}
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestSingleton_UpdateBeforeAnyRead(t *testing.T) {
	cat, _ := newCatalog(t)
	home := cat.MustSingleton(Home)
	ctx := context.Background()

	updated, err := home.Update(ctx, Record{"heroTitle": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated["heroTitle"])
	assert.Equal(t, "Get in Touch", updated["ctaText"])

	got, err := home.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.ID(), got.ID())
	assert.Equal(t, "Hello", got["heroTitle"])
	assert.Greater(t, got["updatedAt"].(string), got["createdAt"].(string))
}

func TestSingleton_UpdateValidation(t *testing.T) {
	cat, mem := newCatalog(t)
	settings := cat.MustSingleton(Settings)
	before := mem.Queries()

	_, err := settings.Update(context.Background(), Record{"contactEmail": "not-an-email"})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = settings.Update(context.Background(), Record{"maintenanceMode": "yes"})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, before, mem.Queries())
}

func TestSingleton_StorageUnavailable(t *testing.T) {
	cat, mem := newCatalog(t)
	mem.SetFailure(errors.New("no reachable servers"))

	_, err := cat.MustSingleton(Terms).Get(context.Background())
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSingleton_Default(t *testing.T) {
	cat, mem := newCatalog(t)
	def := cat.MustSingleton(Settings).Default()
	assert.Equal(t, "BrightPath IT", def["siteName"])
	assert.Equal(t, false, def["maintenanceMode"])
	assert.Empty(t, def.ID())
	assert.Zero(t, mem.Queries())
}

func TestCatalog_Types(t *testing.T) {
	cat, _ := newCatalog(t)
	assert.Equal(t, []string{Home, Settings, Stats, Terms}, cat.SingletonTypes())
	_, ok := cat.Collection(Inquiries)
	assert.True(t, ok)
	_, ok = cat.Collection(Home)
	assert.False(t, ok)

	for _, s := range SingletonSchemas() {
		_, reason := s.prepare(s.Defaults, false)
		assert.Empty(t, reason, s.Type)
	}
}

func TestSingleton_UpdateStringID(t *testing.T) {
	cat, mem := newCatalog(t)
	ctx := context.Background()
	require.NoError(t, mem.Insert(ctx, "settings", bson.M{"_id": "site", "siteName": "Legacy"}))

	settings := cat.MustSingleton(Settings)
	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "site", got.ID())

	updated, err := settings.Update(ctx, Record{"siteName": "New"})
	require.NoError(t, err)
	assert.Equal(t, "site", updated.ID())
	assert.Equal(t, "New", updated["siteName"])
}

// vanishingBackend loses every document it is asked to update.
type vanishingBackend struct {
	*MemoryBackend
}

func (vanishingBackend) Update(context.Context, string, any, bson.M) (bson.M, error) {
	return nil, nil
}

func TestSingleton_UpdateGivesUpWhenDocumentKeepsVanishing(t *testing.T) {
	var schema *Schema
	for _, s := range SingletonSchemas() {
		if s.Type == Settings {
			schema = s
		}
	}
	require.NotNil(t, schema)
	settings := NewSingleton(schema, vanishingBackend{NewMemoryBackend()}, fixedClock)

	_, err := settings.Update(context.Background(), Record{"siteName": "New"})
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
