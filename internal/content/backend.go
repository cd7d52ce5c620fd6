package content

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Backend runs single queries against one collection. Implementations return
// raw storage errors; the content layer classifies them. Lookups that match
// nothing return a nil document and a nil error.
type Backend interface {
	Find(ctx context.Context, collection string, sort bson.D) ([]bson.M, error)
	FindByID(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error)
	// FindFirst returns the oldest document of the collection.
	FindFirst(ctx context.Context, collection string) (bson.M, error)
	Insert(ctx context.Context, collection string, doc bson.M) error
	// Update applies set to the document whose _id equals id (the stored
	// value, not necessarily an ObjectID) and returns it after the update.
	Update(ctx context.Context, collection string, id any, set bson.M) (bson.M, error)
	Delete(ctx context.Context, collection string, id primitive.ObjectID) (bool, error)
	Ping(ctx context.Context) error
}
