package content

import (
	"context"
	"errors"

	"github.com/brightpath/site-backend/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend implements Backend on a lazily established MongoDB client.
// Every query goes through the shared client; the first query connects.
type MongoBackend struct {
	client   *database.Lazy[*mongo.Client]
	database string
}

func NewMongoBackend(client *database.Lazy[*mongo.Client], databaseName string) *MongoBackend {
	return &MongoBackend{client: client, database: databaseName}
}

func (m *MongoBackend) col(ctx context.Context, name string) (*mongo.Collection, error) {
	c, err := m.client.Get(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.database).Collection(name), nil
}

func (m *MongoBackend) Find(ctx context.Context, collection string, order bson.D) ([]bson.M, error) {
	col, err := m.col(ctx, collection)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(order))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []bson.M{}
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (m *MongoBackend) FindByID(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	col, err := m.col(ctx, collection)
	if err != nil {
		return nil, err
	}
	return decodeOne(col.FindOne(ctx, bson.M{fieldID: id}))
}

func (m *MongoBackend) FindFirst(ctx context.Context, collection string) (bson.M, error) {
	col, err := m.col(ctx, collection)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne().SetSort(bson.D{{Key: fieldCreatedAt, Value: 1}, {Key: fieldID, Value: 1}})
	return decodeOne(col.FindOne(ctx, bson.M{}, opts))
}

func (m *MongoBackend) Insert(ctx context.Context, collection string, doc bson.M) error {
	col, err := m.col(ctx, collection)
	if err != nil {
		return err
	}
	_, err = col.InsertOne(ctx, doc)
	return err
}

func (m *MongoBackend) Update(ctx context.Context, collection string, id any, set bson.M) (bson.M, error) {
	col, err := m.col(ctx, collection)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(col.FindOneAndUpdate(ctx, bson.M{fieldID: id}, bson.M{"$set": set}, opts))
}

func (m *MongoBackend) Delete(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	col, err := m.col(ctx, collection)
	if err != nil {
		return false, err
	}
	res, err := col.DeleteOne(ctx, bson.M{fieldID: id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	c, err := m.client.Get(ctx)
	if err != nil {
		return err
	}
	return c.Ping(ctx, nil)
}

func decodeOne(res *mongo.SingleResult) (bson.M, error) {
	var d bson.M
	if err := res.Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

var _ Backend = (*MongoBackend)(nil)
