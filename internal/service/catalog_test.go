package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func newCatalogFixture(products ...*models.Product) (*CatalogService, *fakeProducts, *fakeCache, *recordingPublisher) {
	repo := newFakeProducts(products...)
	cache := newFakeCache()
	publisher := &recordingPublisher{}
	return NewCatalogService(repo, cache, publisher, quietLogger()), repo, cache, publisher
}

func TestCatalogGetFillsCacheOnMiss(t *testing.T) {
	book := &models.Product{ID: bson.NewObjectID(), Name: "Go in Action", Price: 39.99, Stock: 5, InStock: true}
	svc, repo, cache, _ := newCatalogFixture(book)
	ctx := context.Background()

	got, err := svc.Get(ctx, book.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Go in Action", got.Name)
	assert.Equal(t, 1, repo.lookups)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Get(ctx, book.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lookups, "second read is served from cache")
}

func TestCatalogGetWithoutCache(t *testing.T) {
	book := &models.Product{ID: bson.NewObjectID(), Name: "Go in Action", Price: 39.99}
	repo := newFakeProducts(book)
	svc := NewCatalogService(repo, nil, nil, quietLogger())

	got, err := svc.Get(context.Background(), book.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
}

func TestCatalogGetCacheFailureIsNotFatal(t *testing.T) {
	book := &models.Product{ID: bson.NewObjectID(), Name: "Go in Action"}
	svc, _, cache, _ := newCatalogFixture(book)
	cache.failSet = true

	got, err := svc.Get(context.Background(), book.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
}

func TestCatalogGetErrors(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.Get(context.Background(), "12345")
	requireAppError(t, err, http.StatusBadRequest, "Invalid _id: 12345")

	_, err = svc.Get(context.Background(), bson.NewObjectID().Hex())
	requireAppError(t, err, http.StatusNotFound, MsgProductNotFound)
}

func TestCatalogListRejectsInvertedPriceRange(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.List(context.Background(), models.ProductFilter{MinPrice: ptr(100.0), MaxPrice: ptr(10.0)})
	requireAppError(t, err, http.StatusBadRequest, "minPrice cannot be greater than maxPrice")
}

func TestCatalogListPassesFilter(t *testing.T) {
	svc, _, _, _ := newCatalogFixture(
		&models.Product{ID: bson.NewObjectID(), Name: "Lamp", Category: models.CategoryHome},
		&models.Product{ID: bson.NewObjectID(), Name: "Shirt", Category: models.CategoryClothing},
	)

	products, err := svc.List(context.Background(), models.ProductFilter{Category: "Home"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Lamp", products[0].Name)
}

func TestCatalogCreate(t *testing.T) {
	svc, repo, cache, publisher := newCatalogFixture()

	product, err := svc.Create(context.Background(), models.CreateProductRequest{
		Name:        "  Desk Lamp ",
		Description: "Adjustable LED lamp",
		Price:       ptr(44.99),
		Image:       "https://example.com/lamp.jpg",
		Stock:       ptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, "Desk Lamp", product.Name)
	assert.Equal(t, models.CategoryOther, product.Category)
	assert.False(t, product.InStock)
	assert.Len(t, repo.products, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, []string{events.ProductCreated}, publisher.types())
}

func TestCatalogUpdate(t *testing.T) {
	lamp := &models.Product{ID: bson.NewObjectID(), Name: "Lamp", Price: 44.99, Stock: 3, InStock: true}
	svc, repo, cache, publisher := newCatalogFixture(lamp)
	ctx := context.Background()

	updated, err := svc.Update(ctx, lamp.ID.Hex(), models.UpdateProductRequest{Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, updated.InStock)
	assert.Equal(t, "Lamp", updated.Name)

	stored := repo.products[lamp.ID]
	assert.False(t, stored.InStock)
	assert.False(t, cache.items[lamp.ID.Hex()].InStock, "cache holds the updated product")
	assert.Equal(t, []string{events.ProductUpdated}, publisher.types())
}

func TestCatalogUpdateErrors(t *testing.T) {
	lamp := &models.Product{ID: bson.NewObjectID(), Name: "Lamp"}
	svc, _, _, _ := newCatalogFixture(lamp)
	ctx := context.Background()

	_, err := svc.Update(ctx, lamp.ID.Hex(), models.UpdateProductRequest{})
	requireAppError(t, err, http.StatusBadRequest, MsgNoUpdates)

	_, err = svc.Update(ctx, bson.NewObjectID().Hex(), models.UpdateProductRequest{Name: ptr("x")})
	requireAppError(t, err, http.StatusNotFound, MsgProductNotFound)

	_, err = svc.Update(ctx, "bad", models.UpdateProductRequest{Name: ptr("x")})
	requireAppError(t, err, http.StatusBadRequest, "Invalid _id: bad")
}

func TestCatalogDelete(t *testing.T) {
	lamp := &models.Product{ID: bson.NewObjectID(), Name: "Lamp"}
	svc, repo, cache, publisher := newCatalogFixture(lamp)
	ctx := context.Background()

	_, err := svc.Get(ctx, lamp.ID.Hex())
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, lamp.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, lamp.ID, deleted.ID)
	assert.Empty(t, repo.products)
	assert.Equal(t, []string{lamp.ID.Hex()}, cache.invalidated)
	assert.Equal(t, []string{events.ProductDeleted}, publisher.types())

	_, err = svc.Get(ctx, lamp.ID.Hex())
	requireAppError(t, err, http.StatusNotFound, MsgProductNotFound)

	_, err = svc.Delete(ctx, lamp.ID.Hex())
	requireAppError(t, err, http.StatusNotFound, MsgProductNotFound)
}
