package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/brightpath/site-backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// store carries what Collection and Singleton share.
type store struct {
	schema  *Schema
	backend Backend
	clock   Clock
}

// stamp returns a millisecond-precision timestamp strictly after prev.
func (s *store) stamp(prev any) time.Time {
	t := s.clock().UTC().Truncate(time.Millisecond)
	if p, ok := asTime(prev); ok && !t.After(p) {
		t = p.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return t
}

func (s *store) observe(op string, start time.Time, err *error) {
	outcome := "ok"
	if *err != nil {
		switch {
		case errors.Is(*err, ErrValidationFailed):
			outcome = "invalid"
		case errors.Is(*err, ErrInvalidIdentifier):
			outcome = "bad_id"
		default:
			outcome = "error"
		}
	}
	metrics.ContentOperations.WithLabelValues(s.schema.Type, op, outcome).Inc()
	metrics.ContentDuration.WithLabelValues(s.schema.Type, op).Observe(time.Since(start).Seconds())
}

func (s *store) unavailable(op, id string, cause error) error {
	logger.Warnf("content %s %s %s: %v", op, s.schema.Type, id, cause)
	return unavailable(op, s.schema.Type, id, cause)
}

// Collection exposes list/get/add/update/delete for one content type.
type Collection struct {
	store
}

// NewCollection binds schema to backend. A nil clock uses time.Now.
func NewCollection(schema *Schema, backend Backend, clock Clock) *Collection {
	if clock == nil {
		clock = time.Now
	}
	return &Collection{store{schema: schema, backend: backend, clock: clock}}
}

// Schema returns the content type description.
func (c *Collection) Schema() *Schema { return c.schema }

// List returns every record in schema order.
func (c *Collection) List(ctx context.Context) (out []Record, err error) {
	defer c.observe("list", time.Now(), &err)
	docs, err := c.backend.Find(ctx, c.schema.Collection, c.schema.sortDoc())
	if err != nil {
		return nil, c.unavailable("list", "", err)
	}
	out = make([]Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, c.schema.Normalize(d))
	}
	return out, nil
}

// GetByID returns the record, or nil when no record has that id.
func (c *Collection) GetByID(ctx context.Context, id string) (rec Record, err error) {
	defer c.observe("get", time.Now(), &err)
	oid, err := c.parseID("get", id)
	if err != nil {
		return nil, err
	}
	doc, err := c.backend.FindByID(ctx, c.schema.Collection, oid)
	if err != nil {
		return nil, c.unavailable("get", id, err)
	}
	return c.schema.Normalize(doc), nil
}

// Add validates data and stores a new record.
func (c *Collection) Add(ctx context.Context, data Record) (rec Record, err error) {
	defer c.observe("add", time.Now(), &err)
	doc, reason := c.schema.prepare(data, false)
	if reason != "" {
		return nil, invalid("add", c.schema.Type, reason)
	}
	now := c.stamp(nil)
	doc[fieldID] = primitive.NewObjectID()
	doc[fieldCreatedAt] = now
	doc[fieldUpdatedAt] = now
	if err := c.backend.Insert(ctx, c.schema.Collection, doc); err != nil {
		return nil, c.unavailable("add", "", err)
	}
	return c.schema.Normalize(doc), nil
}

// Update applies a partial update. It returns nil when no record has that id.
func (c *Collection) Update(ctx context.Context, id string, partial Record) (rec Record, err error) {
	defer c.observe("update", time.Now(), &err)
	oid, err := c.parseID("update", id)
	if err != nil {
		return nil, err
	}
	set, reason := c.schema.prepare(partial, true)
	if reason != "" {
		return nil, &Error{Kind: ErrValidationFailed, Op: "update", Type: c.schema.Type, ID: id, Reason: reason}
	}
	existing, err := c.backend.FindByID(ctx, c.schema.Collection, oid)
	if err != nil {
		return nil, c.unavailable("update", id, err)
	}
	if existing == nil {
		return nil, nil
	}
	return c.apply(ctx, "update", oid, existing, set)
}

func (s *store) apply(ctx context.Context, op string, id any, existing, set bson.M) (Record, error) {
	set[fieldUpdatedAt] = s.stamp(existing[fieldUpdatedAt])
	doc, err := s.backend.Update(ctx, s.schema.Collection, id, set)
	if err != nil {
		return nil, s.unavailable(op, idString(id), err)
	}
	return s.schema.Normalize(doc), nil
}

// Delete removes the record and reports whether one was removed.
func (c *Collection) Delete(ctx context.Context, id string) (removed bool, err error) {
	defer c.observe("delete", time.Now(), &err)
	oid, err := c.parseID("delete", id)
	if err != nil {
		return false, err
	}
	removed, err = c.backend.Delete(ctx, c.schema.Collection, oid)
	if err != nil {
		return false, c.unavailable("delete", id, err)
	}
	return removed, nil
}

// idString renders a stored _id for errors and logs.
func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

func (c *Collection) parseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalidID(op, c.schema.Type, id)
	}
	return oid, nil
}
