package mongo

import (
	"context"

	"github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func price(v float64) *float64 { return &v }
func stock(v int) *int         { return &v }

// sampleCatalog is inserted on startup when the catalog is empty.
var sampleCatalog = []models.CreateProductRequest{
	{Name: "Noise-Cancelling Headphones", Description: "Over-ear wireless headphones with a 30 hour battery", Price: price(149.99), Category: models.CategoryElectronics, Stock: stock(50), Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
	{Name: "Fitness Smart Watch", Description: "Heart rate, GPS and sleep tracking on your wrist", Price: price(299.99), Category: models.CategoryElectronics, Stock: stock(30), Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500"},
	{Name: "Commuter Backpack", Description: "Water-resistant laptop backpack with a USB charging port", Price: price(49.99), Category: models.CategoryOther, Stock: stock(100), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500"},
	{Name: "Cork Yoga Mat", Description: "Non-slip mat with a carrying strap", Price: price(29.99), Category: models.CategorySports, Stock: stock(75), Image: "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500"},
	{Name: "Insulated Bottle", Description: "Stainless steel, keeps drinks cold for a full day", Price: price(24.99), Category: models.CategorySports, Stock: stock(120), Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=500"},
	{Name: "Practical Go Programming", Description: "A field guide to writing services in Go", Price: price(39.99), Category: models.CategoryBooks, Stock: stock(45), Image: "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=500"},
	{Name: "Stoneware Mug Set", Description: "Four glazed mugs for the morning coffee", Price: price(34.99), Category: models.CategoryHome, Stock: stock(60), Image: "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=500"},
	{Name: "Organic Cotton Tee", Description: "Soft everyday t-shirt in organic cotton", Price: price(19.99), Category: models.CategoryClothing, Stock: stock(150), Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500"},
	{Name: "Dimmable Desk Lamp", Description: "LED lamp with adjustable brightness and USB port", Price: price(44.99), Category: models.CategoryHome, Stock: stock(40), Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=500"},
	{Name: "Waterproof Speaker", Description: "Portable bluetooth speaker with 360 degree sound", Price: price(79.99), Category: models.CategoryElectronics, Stock: stock(8), Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500"},
}

// SampleProducts builds fresh product documents for the sample catalog.
func SampleProducts() []*models.Product {
	products := make([]*models.Product, 0, len(sampleCatalog))
	for i := range sampleCatalog {
		products = append(products, sampleCatalog[i].ToProduct())
	}
	return products
}

// SeedProducts fills an empty catalog with the sample products.
func (s *Store) SeedProducts(ctx context.Context, logger *logrus.Logger) error {
	products := s.Products()

	count, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.WithField("count", count).Info("Found existing products, skipping seed")
		return nil
	}

	logger.Info("No products found, seeding catalog")
	if err := products.CreateMany(ctx, SampleProducts()); err != nil {
		return err
	}
	logger.WithField("count", len(sampleCatalog)).Info("Sample products seeded")
	return nil
}
