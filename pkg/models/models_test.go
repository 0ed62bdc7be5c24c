package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func ptr[T any](v T) *T { return &v }

func TestCartAddItemMergesSameProduct(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	productID := bson.NewObjectID()

	first := cart.AddItem(productID, 2, 10.00)
	cart.CalculateTotals()
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.00, cart.TotalAmount)

	second := cart.AddItem(productID, 3, 12.50)
	cart.CalculateTotals()

	require.Len(t, cart.Items, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 10.00, cart.Items[0].Price, "price stays at the snapshot taken on first add")
	assert.Equal(t, 5, cart.TotalItems)
	assert.Equal(t, 50.00, cart.TotalAmount)
}

func TestCartTotalsAreSumsOverLines(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	cart.AddItem(bson.NewObjectID(), 3, 0.1)
	cart.AddItem(bson.NewObjectID(), 1, 0.2)
	cart.AddItem(bson.NewObjectID(), 4, 149.99)
	cart.CalculateTotals()

	assert.Equal(t, 8, cart.TotalItems)
	assert.Equal(t, 600.46, cart.TotalAmount)
}

func TestCartRemoveOnlyItemYieldsZeroTotals(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	item := cart.AddItem(bson.NewObjectID(), 2, 5)
	cart.CalculateTotals()

	idx := cart.FindItem(item.ID)
	require.Equal(t, 0, idx)
	cart.RemoveItem(idx)
	cart.CalculateTotals()

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)
}

func TestCartClear(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	cart.AddItem(bson.NewObjectID(), 1, 5)
	cart.AddItem(bson.NewObjectID(), 1, 7)
	cart.Clear()
	cart.CalculateTotals()

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}

func TestCartLookups(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	productID := bson.NewObjectID()
	cart.AddItem(productID, 4, 1)

	assert.Equal(t, 0, cart.FindProduct(productID))
	assert.Equal(t, -1, cart.FindProduct(bson.NewObjectID()))
	assert.Equal(t, -1, cart.FindItem(bson.NewObjectID()))
	assert.Equal(t, []bson.ObjectID{productID}, cart.ProductIDs())
}

func TestCartTouchMovesExpiry(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cart := NewCart("session_1234567890", created)
	later := created.Add(48 * time.Hour)
	cart.Touch(later)

	assert.Equal(t, created, cart.CreatedAt)
	assert.Equal(t, later.Add(7*24*time.Hour), cart.ExpiresAt())
}

func TestCartHydrate(t *testing.T) {
	cart := NewCart("session_1234567890", time.Now())
	live := &Product{ID: bson.NewObjectID(), Name: "Desk Lamp", Price: 44.99, Stock: 3, InStock: true, Category: CategoryHome}
	gone := bson.NewObjectID()
	cart.AddItem(live.ID, 2, 40.00)
	cart.AddItem(gone, 1, 9.99)
	cart.CalculateTotals()

	view := cart.Hydrate(map[bson.ObjectID]*Product{live.ID: live})

	require.Len(t, view.Items, 2)
	require.NotNil(t, view.Items[0].Product)
	assert.Equal(t, "Desk Lamp", view.Items[0].Product.Name)
	assert.Equal(t, 40.00, view.Items[0].Price)
	assert.Equal(t, 80.00, view.Items[0].Subtotal)
	assert.Nil(t, view.Items[1].Product)
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, 89.99, view.TotalAmount)
}

func TestCreateProductRequestToProduct(t *testing.T) {
	req := CreateProductRequest{
		Name:        "  Trail Shoes ",
		Description: "Grippy soles",
		Price:       ptr(89.99),
		Image:       "https://example.com/shoes.jpg",
	}

	product := req.ToProduct()

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, "Trail Shoes", product.Name)
	assert.Equal(t, CategoryOther, product.Category)
	assert.Equal(t, 0, product.Stock)
	assert.False(t, product.InStock)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)

	req.Stock = ptr(12)
	req.Category = CategorySports
	product = req.ToProduct()
	assert.True(t, product.InStock)
	assert.Equal(t, CategorySports, product.Category)
}

func TestUpdateProductRequestApply(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	product := &Product{Name: "Mug", Price: 9, Stock: 5, InStock: true, CreatedAt: created, UpdatedAt: created}

	req := UpdateProductRequest{Stock: ptr(0), Price: ptr(11.5)}
	assert.False(t, req.IsEmpty())
	req.Apply(product)

	assert.Equal(t, "Mug", product.Name)
	assert.Equal(t, 11.5, product.Price)
	assert.False(t, product.InStock)
	assert.Equal(t, created, product.CreatedAt)
	assert.True(t, product.UpdatedAt.After(created))

	(&UpdateProductRequest{Stock: ptr(7)}).Apply(product)
	assert.True(t, product.InStock)
	assert.True(t, (&UpdateProductRequest{}).IsEmpty())
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Category("Toys").IsValid())
}
