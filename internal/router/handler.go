package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// Catalog is the product operations the handlers call.
type Catalog interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// Carts is the session cart operations the handlers call.
type Carts interface {
	Get(ctx context.Context, sessionID string) (*models.CartView, error)
	AddItem(ctx context.Context, req models.AddToCartRequest) (*models.CartView, error)
	UpdateItem(ctx context.Context, itemID string, req models.UpdateCartItemRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, itemID string, req models.RemoveCartItemRequest) (*models.CartView, error)
	Clear(ctx context.Context, sessionID string) (*models.CartView, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog Catalog
	carts   Carts
	db      Pinger
	logger  *logrus.Logger
}

func NewHandler(catalog Catalog, carts Carts, db Pinger, logger *logrus.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		carts:   carts,
		db:      db,
		logger:  logger,
	}
}

// sessionURI binds and validates a :sessionId path segment.
type sessionURI struct {
	SessionID string `uri:"sessionId" binding:"required,min=10,max=100"`
}
