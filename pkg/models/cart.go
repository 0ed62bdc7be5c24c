package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartRetention is how long an untouched cart survives before the TTL index drops it.
const CartRetention = 7 * 24 * time.Hour

// CartItem is a line in a cart. Price is snapshotted when the line is created.
type CartItem struct {
	ID       bson.ObjectID `json:"_id" bson:"_id"`
	Product  bson.ObjectID `json:"product" bson:"product"`
	Quantity int           `json:"quantity" bson:"quantity"`
	Price    float64       `json:"price" bson:"price"`
}

// Cart is the session-scoped cart document.
type Cart struct {
	ID          bson.ObjectID `json:"_id" bson:"_id"`
	SessionID   string        `json:"sessionId" bson:"sessionId"`
	Items       []CartItem    `json:"items" bson:"items"`
	TotalAmount float64       `json:"totalAmount" bson:"totalAmount"`
	TotalItems  int           `json:"totalItems" bson:"totalItems"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func NewCart(sessionID string, now time.Time) *Cart {
	return &Cart{
		ID:        bson.NewObjectID(),
		SessionID: sessionID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItem returns the index of the line with the given id, or -1.
func (c *Cart) FindItem(itemID bson.ObjectID) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the line holding productID, or -1.
func (c *Cart) FindProduct(productID bson.ObjectID) int {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			return i
		}
	}
	return -1
}

// AddItem merges quantity into the existing line for productID or appends a
// new line priced at price. The existing line keeps its original price.
func (c *Cart) AddItem(productID bson.ObjectID, quantity int, price float64) *CartItem {
	if idx := c.FindProduct(productID); idx >= 0 {
		c.Items[idx].Quantity += quantity
		return &c.Items[idx]
	}
	c.Items = append(c.Items, CartItem{
		ID:       bson.NewObjectID(),
		Product:  productID,
		Quantity: quantity,
		Price:    price,
	})
	return &c.Items[len(c.Items)-1]
}

func (c *Cart) RemoveItem(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// CalculateTotals recomputes TotalItems and TotalAmount from the lines.
func (c *Cart) CalculateTotals() {
	totalItems := 0
	totalAmount := decimal.Zero

	for _, item := range c.Items {
		totalItems += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(line)
	}

	c.TotalItems = totalItems
	c.TotalAmount, _ = totalAmount.Round(2).Float64()
}

// Touch marks the cart as modified, which also resets its expiry window.
func (c *Cart) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *Cart) ExpiresAt() time.Time {
	return c.UpdatedAt.Add(CartRetention)
}

// ProductIDs lists the distinct products referenced by the cart.
func (c *Cart) ProductIDs() []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.Product)
	}
	return ids
}

type CartItemView struct {
	ID       bson.ObjectID   `json:"_id"`
	Product  *ProductSummary `json:"product"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
	Subtotal float64         `json:"subtotal"`
}

// CartView is a cart whose lines carry the current product display fields.
type CartView struct {
	ID          bson.ObjectID  `json:"_id"`
	SessionID   string         `json:"sessionId"`
	Items       []CartItemView `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
	TotalItems  int            `json:"totalItems"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	ExpiresAt   time.Time      `json:"expiresAt"`
}

// Hydrate joins the lines with products. Lines whose product no longer
// exists get a nil Product.
func (c *Cart) Hydrate(products map[bson.ObjectID]*Product) *CartView {
	view := &CartView{
		ID:          c.ID,
		SessionID:   c.SessionID,
		Items:       make([]CartItemView, 0, len(c.Items)),
		TotalAmount: c.TotalAmount,
		TotalItems:  c.TotalItems,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ExpiresAt:   c.ExpiresAt(),
	}

	for _, item := range c.Items {
		line := CartItemView{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		line.Subtotal, _ = decimal.NewFromFloat(item.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2).Float64()
		if product, ok := products[item.Product]; ok && product != nil {
			line.Product = product.Summary()
		}
		view.Items = append(view.Items, line)
	}

	return view
}

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required,objectid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
	SessionID string `json:"sessionId" binding:"required,min=10,max=100"`
}

type UpdateCartItemRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
	SessionID string `json:"sessionId" binding:"required,min=10,max=100"`
}

type RemoveCartItemRequest struct {
	SessionID string `json:"sessionId" binding:"required,min=10,max=100"`
}
