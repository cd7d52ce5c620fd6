package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// NewLazyMongo returns a memoized Mongo client that connects on first use.
func NewLazyMongo(uri string, timeout time.Duration) *Lazy[*mongo.Client] {
	return NewLazy(
		func(ctx context.Context) (*mongo.Client, error) {
			return ConnectMongo(ctx, uri, timeout)
		},
		func(ctx context.Context, c *mongo.Client) error {
			return c.Disconnect(ctx)
		},
	)
}
