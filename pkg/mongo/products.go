package mongo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// sortableFields maps the public sort keys onto document fields.
var sortableFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"category":  "category",
	"stock":     "stock",
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
}

type ProductStore struct {
	collection *mongo.Collection
}

// BuildProductQuery turns a listing filter into a MongoDB query document.
func BuildProductQuery(filter models.ProductFilter) bson.M {
	query := bson.M{}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query["$text"] = bson.M{"$search": search}
	}

	return query
}

// BuildProductSort parses "price,-createdAt" style sort strings. Unknown
// fields are skipped; an empty result falls back to newest first.
func BuildProductSort(sort string) bson.D {
	sortDoc := bson.D{}
	seen := make(map[string]bool)

	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		direction := 1
		if strings.HasPrefix(part, "-") {
			direction = -1
			part = strings.TrimPrefix(part, "-")
		}

		field, ok := sortableFields[part]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		sortDoc = append(sortDoc, bson.E{Key: field, Value: direction})
	}

	if len(sortDoc) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sortDoc
}

func (s *ProductStore) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(BuildProductSort(filter.Sort))
	cursor, err := s.collection.Find(ctx, BuildProductQuery(filter), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query products")
	}
	defer cursor.Close(ctx)

	products := make([]*models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	return products, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(global.ErrNotFound, "product %s", id.Hex())
		}
		return nil, errors.Wrapf(err, "failed to fetch product %s", id.Hex())
	}

	return &product, nil
}

// GetByIDs fetches every product in ids; missing ones are simply absent.
func (s *ProductStore) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Product, error) {
	products := make([]*models.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to query products by id")
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	return products, nil
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, product); err != nil {
		return translateWriteError(err, "failed to insert product")
	}
	return nil
}

func (s *ProductStore) CreateMany(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	if _, err := s.collection.InsertMany(ctx, products); err != nil {
		return translateWriteError(err, "failed to insert products")
	}
	return nil
}

// Replace overwrites the stored product with the same _id.
func (s *ProductStore) Replace(ctx context.Context, product *models.Product) error {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return translateWriteError(err, "failed to update product")
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(global.ErrNotFound, "product %s", product.ID.Hex())
	}
	return nil
}

// Delete removes the product and returns what was stored.
func (s *ProductStore) Delete(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	var deleted models.Product
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(global.ErrNotFound, "product %s", id.Hex())
		}
		return nil, errors.Wrapf(err, "failed to delete product %s", id.Hex())
	}

	return &deleted, nil
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	ctx, cancel := global.GetDefaultTimer(ctx)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}
	return count, nil
}
