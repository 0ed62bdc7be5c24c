package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category is one of the fixed catalog labels.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents an item in the catalog
type Product struct {
	ID          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Price       float64       `json:"price" bson:"price"`
	Image       string        `json:"image" bson:"image"`
	Category    Category      `json:"category" bson:"category"`
	Stock       int           `json:"stock" bson:"stock"`
	InStock     bool          `json:"inStock" bson:"inStock"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SyncStockStatus keeps InStock true iff Stock > 0. Call before every write.
func (p *Product) SyncStockStatus() {
	p.InStock = p.Stock > 0
}

func (p *Product) IsAvailable() bool {
	return p.InStock && p.Stock > 0
}

func (p *Product) SetTimestamps() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// ProductSummary is the subset of a product embedded in a hydrated cart.
type ProductSummary struct {
	ID       bson.ObjectID `json:"_id"`
	Name     string        `json:"name"`
	Price    float64       `json:"price"`
	Image    string        `json:"image"`
	Category Category      `json:"category"`
	Stock    int           `json:"stock"`
	InStock  bool          `json:"inStock"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Stock:    p.Stock,
		InStock:  p.InStock,
	}
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,notblank,max=100"`
	Description string   `json:"description" binding:"required,notblank,max=500"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Image       string   `json:"image" binding:"required,notblank"`
	Category    Category `json:"category" binding:"omitempty,oneof=Electronics Clothing Books Home Sports Other"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

func (req *CreateProductRequest) ToProduct() *Product {
	product := &Product{
		ID:          bson.NewObjectID(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Image:       req.Image,
		Category:    req.Category,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if product.Category == "" {
		product.Category = CategoryOther
	}
	product.SyncStockStatus()
	product.SetTimestamps()
	return product
}

// UpdateProductRequest is a partial update; nil fields are left alone.
type UpdateProductRequest struct {
	Name        *string   `json:"name" binding:"omitempty,notblank,max=100"`
	Description *string   `json:"description" binding:"omitempty,notblank,max=500"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Image       *string   `json:"image" binding:"omitempty,notblank"`
	Category    *Category `json:"category" binding:"omitempty,oneof=Electronics Clothing Books Home Sports Other"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
}

func (req *UpdateProductRequest) IsEmpty() bool {
	return req.Name == nil && req.Description == nil && req.Price == nil &&
		req.Image == nil && req.Category == nil && req.Stock == nil
}

// Apply copies the provided fields onto p and refreshes the derived fields.
func (req *UpdateProductRequest) Apply(p *Product) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	p.SyncStockStatus()
	p.SetTimestamps()
}

// ProductFilter carries the query-string options of the product listing.
type ProductFilter struct {
	Category string   `form:"category" binding:"omitempty,oneof=Electronics Clothing Books Home Sports Other"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Search   string   `form:"search"`
	Sort     string   `form:"sort"`
}
