package mongo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Products: category equality filter
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	// Products: price range filter and sort
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_price"),
		},
	},
	// Products: newest-first listing
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	},
	// Products: free-text search, name weighted over description
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "description", Value: 1},
				}),
		},
	},
	// Carts: one cart per session
	{
		CollectionName: CartsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_session_unique"),
		},
	},
	// Carts: drop carts idle for the retention window
	{
		CollectionName: CartsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{{Key: "updatedAt", Value: 1}},
			Options: options.Index().
				SetName("idx_cart_ttl").
				SetExpireAfterSeconds(int32(models.CartRetention.Seconds())),
		},
	},
}

// EnsureIndexes creates every index in requiredIndexes. Existing indexes
// with the same definition are left untouched by the server.
func (s *Store) EnsureIndexes(ctx context.Context, logger *logrus.Logger) error {
	logger.Info("Starting index creation")

	for _, idxConfig := range requiredIndexes {
		collection := s.GetCollection(idxConfig.CollectionName)

		indexCtx, cancel := global.GetDefaultTimer(ctx)
		indexName, err := collection.Indexes().CreateOne(indexCtx, idxConfig.IndexModel)
		cancel()
		if err != nil {
			return errors.Wrapf(err, "failed to create index on collection %s", idxConfig.CollectionName)
		}

		logger.WithFields(logrus.Fields{
			"index":      indexName,
			"collection": idxConfig.CollectionName,
		}).Debug("Index ensured")
	}

	logger.WithField("count", len(requiredIndexes)).Info("All indexes created successfully")
	return nil
}
