package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) (*Loader, *content.Catalog, *content.MemoryBackend) {
	t.Helper()
	mem := content.NewMemoryBackend()
	cat := content.NewCatalog(mem, nil)
	return NewLoader(cat), cat, mem
}

func TestHome(t *testing.T) {
	l, cat, _ := seeded(t)
	ctx := context.Background()

	_, err := cat.MustCollection(content.Services).Add(ctx, content.Record{"title": "Cloud", "description": "d", "icon": "cloud"})
	require.NoError(t, err)
	for i, rating := range []int{5, 2, 4} {
		_, err := cat.MustCollection(content.Feedback).Add(ctx, content.Record{
			"name": "c", "email": "c@example.com", "rating": rating, "message": string(rune('a' + i)),
		})
		require.NoError(t, err)
	}
	for i := 0; i < FeaturedProjects+2; i++ {
		_, err := cat.MustCollection(content.Projects).Add(ctx, content.Record{"title": "p", "description": "d", "status": "Completed"})
		require.NoError(t, err)
	}

	p := l.Home(ctx)
	assert.Equal(t, "Get in Touch", p.Content["ctaText"])
	assert.NotEmpty(t, p.Content.ID())
	assert.Equal(t, int64(150), p.Stats["projectsCompleted"])
	assert.Len(t, p.Services, 1)
	assert.Len(t, p.Projects, FeaturedProjects)
	require.Len(t, p.Feedback, 2)
	for _, f := range p.Feedback {
		assert.GreaterOrEqual(t, f["rating"].(int64), int64(4))
	}
}

func TestHome_DegradesWhenStorageFails(t *testing.T) {
	l, _, mem := seeded(t)
	mem.SetFailure(errors.New("no reachable servers"))

	p := l.Home(context.Background())
	assert.Equal(t, "Innovative IT Solutions for Your Business", p.Content["heroTitle"])
	assert.Empty(t, p.Content.ID())
	assert.Equal(t, int64(80), p.Stats["happyClients"])
	assert.NotNil(t, p.Services)
	assert.Empty(t, p.Services)
	assert.NotNil(t, p.Projects)
	assert.NotNil(t, p.Feedback)
}

func TestFAQ_Categories(t *testing.T) {
	l, cat, _ := seeded(t)
	ctx := context.Background()
	for _, c := range []string{"Billing", "", "Support", "Billing"} {
		_, err := cat.MustCollection(content.FAQ).Add(ctx, content.Record{"question": "q", "answer": "a", "category": c})
		require.NoError(t, err)
	}
	p := l.FAQ(ctx)
	assert.Len(t, p.Items, 4)
	assert.Equal(t, []string{"Billing", "Support"}, p.Categories)
}

func TestTerms_RendersMarkdown(t *testing.T) {
	l, cat, _ := seeded(t)
	ctx := context.Background()
	_, err := cat.MustSingleton(content.Terms).Update(ctx, content.Record{
		"content": "## Privacy\nWe keep\nyour data.\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)

	p := l.Terms(ctx)
	assert.Equal(t, "Terms and Conditions", p.Title)
	assert.Contains(t, p.HTML, "<h2>Privacy</h2>")
	assert.Contains(t, p.HTML, "We keep<br>")
	assert.NotContains(t, p.HTML, "<script>")
	assert.NotEmpty(t, p.UpdatedAt)
}

func TestTerms_FallbackWhenStorageFails(t *testing.T) {
	l, _, mem := seeded(t)
	mem.SetFailure(errors.New("down"))

	p := l.Terms(context.Background())
	assert.Equal(t, "2024-01-01", p.EffectiveDate)
	assert.Contains(t, p.HTML, "<h2>Use of this site</h2>")
	assert.Empty(t, p.UpdatedAt)
}

func TestLists(t *testing.T) {
	l, cat, mem := seeded(t)
	ctx := context.Background()
	_, err := cat.MustCollection(content.Team).Add(ctx, content.Record{"name": "Ada", "role": "CTO"})
	require.NoError(t, err)

	assert.Len(t, l.Team(ctx), 1)
	assert.Empty(t, l.Projects(ctx))
	assert.Empty(t, l.Services(ctx))
	assert.Equal(t, "BrightPath IT", l.Settings(ctx)["siteName"])

	mem.SetFailure(errors.New("down"))
	assert.Empty(t, l.Team(ctx))
	assert.Equal(t, "BrightPath IT", l.Settings(ctx)["siteName"])
}
