package content

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

var errSingletonVanished = errors.New("document disappeared during update")

// Singleton is a configuration record limited to one stored document.
// Get never returns an absent result: the document is created from the
// schema defaults the first time it is read.
type Singleton struct {
	store
	creating singleflight.Group
}

// NewSingleton binds schema to backend. A nil clock uses time.Now.
func NewSingleton(schema *Schema, backend Backend, clock Clock) *Singleton {
	if clock == nil {
		clock = time.Now
	}
	return &Singleton{store: store{schema: schema, backend: backend, clock: clock}}
}

// Schema returns the content type description.
func (s *Singleton) Schema() *Schema { return s.schema }

// Get returns the stored document, creating the default one if none exists.
func (s *Singleton) Get(ctx context.Context) (rec Record, err error) {
	defer s.observe("get", time.Now(), &err)
	doc, err := s.getOrCreate(ctx, "get")
	if err != nil {
		return nil, err
	}
	return s.schema.Normalize(doc), nil
}

// Update applies a partial update, creating the default document first if
// none exists.
func (s *Singleton) Update(ctx context.Context, partial Record) (rec Record, err error) {
	defer s.observe("update", time.Now(), &err)
	set, reason := s.schema.prepare(partial, true)
	if reason != "" {
		return nil, invalid("update", s.schema.Type, reason)
	}
	// a document removed between read and write is materialized once more
	for attempt := 0; attempt < 2; attempt++ {
		doc, err := s.getOrCreate(ctx, "update")
		if err != nil {
			return nil, err
		}
		rec, err = s.apply(ctx, "update", doc[fieldID], doc, set)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, s.unavailable("update", "", errSingletonVanished)
}

// Default returns the normalized default payload without touching storage.
func (s *Singleton) Default() Record {
	doc, reason := s.schema.prepare(s.schema.Defaults, false)
	if reason != "" {
		return Record{}
	}
	return s.schema.Normalize(doc)
}

func (s *Singleton) getOrCreate(ctx context.Context, op string) (bson.M, error) {
	doc, err := s.backend.FindFirst(ctx, s.schema.Collection)
	if err != nil {
		return nil, s.unavailable(op, "", err)
	}
	if doc != nil {
		return doc, nil
	}

	// concurrent first reads in this process create a single document
	v, err, _ := s.creating.Do(s.schema.Type, func() (interface{}, error) {
		existing, err := s.backend.FindFirst(ctx, s.schema.Collection)
		if err != nil {
			return nil, s.unavailable(op, "", err)
		}
		if existing != nil {
			return existing, nil
		}
		created, reason := s.schema.prepare(s.schema.Defaults, false)
		if reason != "" {
			return nil, invalid(op, s.schema.Type, "default payload: "+reason)
		}
		now := s.stamp(nil)
		created[fieldID] = primitive.NewObjectID()
		created[fieldCreatedAt] = now
		created[fieldUpdatedAt] = now
		if err := s.backend.Insert(ctx, s.schema.Collection, created); err != nil {
			return nil, s.unavailable(op, "", err)
		}
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(bson.M), nil
}
