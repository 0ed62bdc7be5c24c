package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// ProductRepository is the persistence the catalog and cart services need.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id bson.ObjectID) (*models.Product, error)
}

type CartRepository interface {
	FindBySession(ctx context.Context, sessionID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}

// ProductCache is an optional read-through cache in front of ProductRepository.
type ProductCache interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, id string) error
}

// publish sends evt and only logs failures; the change feed is best effort.
func publish(ctx context.Context, publisher events.Publisher, logger *logrus.Logger, evt events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evt); err != nil {
		logger.WithFields(logrus.Fields{
			"type": evt.Type,
			"key":  evt.Key,
		}).WithError(err).Warn("Failed to publish event")
	}
}
