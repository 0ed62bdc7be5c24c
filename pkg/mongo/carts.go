package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

type CartStore struct {
	collection *mongo.Collection
}

func (s *CartStore) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	var cart models.Cart
	err := s.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(global.ErrNotFound, "cart for session %s", sessionID)
		}
		return nil, errors.Wrap(err, "failed to fetch cart")
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (s *CartStore) Create(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, cart); err != nil {
		return translateWriteError(err, "failed to create cart")
	}
	return nil
}

// Save writes the whole cart document, inserting it when it does not exist yet.
// Concurrent saves for one session are last-writer-wins.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	replaceOptions := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"sessionId": cart.SessionID}, cart, replaceOptions)
	if err != nil {
		return translateWriteError(err, "failed to save cart")
	}
	return nil
}
