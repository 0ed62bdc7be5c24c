package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

const (
	ProductsCollection = "products"
	CartsCollection    = "carts"
)

// Store owns the MongoDB client and hands out the collection stores.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client against uri and verifies it with a ping.
func Connect(ctx context.Context, uri, databaseName string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	store := &Store{
		client: client,
		db:     client.Database(databaseName),
	}

	pingCtx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return store, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) GetCollection(collectionName string) *mongo.Collection {
	return s.db.Collection(collectionName)
}

func (s *Store) Products() *ProductStore {
	return &ProductStore{collection: s.GetCollection(ProductsCollection)}
}

func (s *Store) Carts() *CartStore {
	return &CartStore{collection: s.GetCollection(CartsCollection)}
}
