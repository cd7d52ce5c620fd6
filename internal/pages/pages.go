// Package pages assembles the public page view models. A failed load never
// fails the page: lists degrade to empty and singletons to their defaults.
package pages

import (
	"bytes"
	"context"
	"html"
	"sort"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"
)

// Home page limits.
const (
	FeaturedProjects = 6
	FeaturedFeedback = 6
)

// mdRenderer escapes raw HTML in the terms markdown.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type HomePage struct {
	Content  content.Record   `json:"content"`
	Stats    content.Record   `json:"stats"`
	Services []content.Record `json:"services"`
	Projects []content.Record `json:"projects"`
	Feedback []content.Record `json:"feedback"`
}

type FAQPage struct {
	Items      []content.Record `json:"items"`
	Categories []string         `json:"categories"`
}

type TermsPage struct {
	Title         string `json:"title"`
	EffectiveDate string `json:"effectiveDate"`
	HTML          string `json:"html"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// Loader reads page content from the catalog.
type Loader struct {
	catalog *content.Catalog
}

func NewLoader(catalog *content.Catalog) *Loader {
	return &Loader{catalog: catalog}
}

// list returns the collection or an empty list on failure.
func (l *Loader) list(ctx context.Context, typ string) []content.Record {
	col, ok := l.catalog.Collection(typ)
	if !ok {
		return []content.Record{}
	}
	recs, err := col.List(ctx)
	if err != nil {
		logger.Warnf("pages: loading %s: %v", typ, err)
		return []content.Record{}
	}
	return recs
}

// single returns the singleton or its default on failure.
func (l *Loader) single(ctx context.Context, typ string) content.Record {
	s, ok := l.catalog.Singleton(typ)
	if !ok {
		return content.Record{}
	}
	rec, err := s.Get(ctx)
	if err != nil {
		logger.Warnf("pages: loading %s: %v", typ, err)
		return s.Default()
	}
	return rec
}

// Home loads the home page sections concurrently.
func (l *Loader) Home(ctx context.Context) HomePage {
	var p HomePage
	var g errgroup.Group
	g.Go(func() error { p.Content = l.single(ctx, content.Home); return nil })
	g.Go(func() error { p.Stats = l.single(ctx, content.Stats); return nil })
	g.Go(func() error { p.Services = l.list(ctx, content.Services); return nil })
	g.Go(func() error {
		p.Projects = firstN(l.list(ctx, content.Projects), FeaturedProjects)
		return nil
	})
	g.Go(func() error {
		var best []content.Record
		for _, r := range l.list(ctx, content.Feedback) {
			if n, _ := r["rating"].(int64); n >= 4 {
				best = append(best, r)
			}
		}
		p.Feedback = firstN(best, FeaturedFeedback)
		return nil
	})
	_ = g.Wait()
	return p
}

func (l *Loader) Services(ctx context.Context) []content.Record {
	return l.list(ctx, content.Services)
}

func (l *Loader) Projects(ctx context.Context) []content.Record {
	return l.list(ctx, content.Projects)
}

func (l *Loader) Team(ctx context.Context) []content.Record {
	return l.list(ctx, content.Team)
}

// FAQ returns the items and their distinct categories.
func (l *Loader) FAQ(ctx context.Context) FAQPage {
	items := l.list(ctx, content.FAQ)
	seen := map[string]bool{}
	cats := []string{}
	for _, r := range items {
		if c, _ := r["category"].(string); c != "" && !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return FAQPage{Items: items, Categories: cats}
}

func (l *Loader) Settings(ctx context.Context) content.Record {
	return l.single(ctx, content.Settings)
}

// Terms renders the terms markdown to HTML.
func (l *Loader) Terms(ctx context.Context) TermsPage {
	rec := l.single(ctx, content.Terms)
	p := TermsPage{
		Title:         str(rec, "title"),
		EffectiveDate: str(rec, "effectiveDate"),
		UpdatedAt:     str(rec, "updatedAt"),
	}
	md := str(rec, "content")
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		logger.Warnf("pages: rendering terms: %v", err)
		p.HTML = "<pre>" + html.EscapeString(md) + "</pre>"
		return p
	}
	p.HTML = buf.String()
	return p
}

func firstN(recs []content.Record, n int) []content.Record {
	if recs == nil {
		return []content.Record{}
	}
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

func str(rec content.Record, field string) string {
	s, _ := rec[field].(string)
	return s
}
