package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

const (
	MsgProductNotFound = "Product not found"
	MsgNoUpdates       = "No updates provided"
)

type CatalogService struct {
	products  ProductRepository
	cache     ProductCache
	publisher events.Publisher
	logger    *logrus.Logger
}

// NewCatalogService wires the catalog. cache may be nil.
func NewCatalogService(products ProductRepository, cache ProductCache, publisher events.Publisher, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		products:  products,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// ParseObjectID validates a path identifier.
func ParseObjectID(field, value string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(value)
	if err != nil {
		return bson.NilObjectID, global.BadRequest(fmt.Sprintf("Invalid %s: %s", field, value)).WithCause(err)
	}
	return id, nil
}

func (s *CatalogService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, global.BadRequest("minPrice cannot be greater than maxPrice")
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "listing products")
	}
	return products, nil
}

// Get serves from the cache when possible and fills it on a miss.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := ParseObjectID("_id", id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if product, err := s.cache.Get(ctx, id); err == nil {
			return product, nil
		}
	}

	product, err := s.products.GetByID(ctx, objectID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgProductNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "fetching product")
	}

	s.cacheProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := req.ToProduct()

	if err := s.products.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "creating product")
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID.Hex(),
		"stock":      product.Stock,
	}).Info("Product created")

	s.cacheProduct(ctx, product)
	publish(ctx, s.publisher, s.logger, events.New(events.ProductCreated, product.ID.Hex(), product))
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	objectID, err := ParseObjectID("_id", id)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, global.BadRequest(MsgNoUpdates)
	}

	product, err := s.products.GetByID(ctx, objectID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgProductNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "loading product for update")
	}

	req.Apply(product)

	if err := s.products.Replace(ctx, product); err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgProductNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "updating product")
	}

	s.cacheProduct(ctx, product)
	publish(ctx, s.publisher, s.logger, events.New(events.ProductUpdated, product.ID.Hex(), product))
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := ParseObjectID("_id", id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.products.Delete(ctx, objectID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgProductNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "deleting product")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.WithError(err).WithField("product_id", id).Warn("Failed to remove product from cache")
		}
	}

	publish(ctx, s.publisher, s.logger, events.New(events.ProductDeleted, id, deleted))
	return deleted, nil
}

func (s *CatalogService) cacheProduct(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID.Hex()).Warn("Failed to cache product")
	}
}
