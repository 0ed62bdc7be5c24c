package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

const (
	MsgCartNotFound      = "Cart not found"
	MsgItemNotFound      = "Item not found in cart"
	MsgOutOfStock        = "Product is out of stock or insufficient quantity"
	MsgInsufficientStock = "Insufficient stock available"
)

// CartService implements the session cart. Every mutation is a
// read-modify-write of the whole cart document; two concurrent requests for
// the same session can overwrite each other.
type CartService struct {
	carts     CartRepository
	products  ProductRepository
	publisher events.Publisher
	logger    *logrus.Logger
	now       func() time.Time
}

func NewCartService(carts CartRepository, products ProductRepository, publisher events.Publisher, logger *logrus.Logger) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the hydrated cart for sessionID, creating an empty one first
// if the session has none.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.CartView, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err == nil {
		return s.hydrate(ctx, cart)
	}
	if !global.IsNotFound(err) {
		return nil, errors.Wrap(err, "loading cart")
	}

	cart = models.NewCart(sessionID, s.now())
	if err := s.carts.Create(ctx, cart); err != nil {
		// Lost a creation race with another request for the same session.
		if _, dup := global.AsAppError(err); dup {
			existing, findErr := s.carts.FindBySession(ctx, sessionID)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "loading cart after concurrent create")
			}
			return s.hydrate(ctx, existing)
		}
		return nil, errors.Wrap(err, "creating cart")
	}

	s.logger.WithField("session_id", sessionID).Debug("Cart created")
	return s.hydrate(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, req models.AddToCartRequest) (*models.CartView, error) {
	productID, err := ParseObjectID("productId", req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgProductNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "loading product")
	}

	cart, err := s.carts.FindBySession(ctx, req.SessionID)
	if err != nil {
		if !global.IsNotFound(err) {
			return nil, errors.Wrap(err, "loading cart")
		}
		cart = models.NewCart(req.SessionID, s.now())
	}

	// Only the requested quantity is checked; the merged line may exceed stock.
	if !product.IsAvailable() || product.Stock < req.Quantity {
		return nil, global.BadRequest(MsgOutOfStock)
	}

	item := cart.AddItem(productID, req.Quantity, product.Price)
	change := events.CartChange{
		SessionID: cart.SessionID,
		ItemID:    item.ID.Hex(),
		ProductID: productID.Hex(),
		Quantity:  item.Quantity,
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, events.CartItemAdded, cart, change)
	return s.hydrate(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, itemID string, req models.UpdateCartItemRequest) (*models.CartView, error) {
	lineID, err := ParseObjectID("itemId", itemID)
	if err != nil {
		return nil, err
	}

	cart, idx, err := s.findLine(ctx, req.SessionID, lineID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, cart.Items[idx].Product)
	if err != nil && !global.IsNotFound(err) {
		return nil, errors.Wrap(err, "loading product")
	}
	if product == nil || product.Stock < req.Quantity {
		return nil, global.BadRequest(MsgInsufficientStock)
	}

	cart.Items[idx].Quantity = req.Quantity
	change := events.CartChange{
		SessionID: cart.SessionID,
		ItemID:    itemID,
		ProductID: cart.Items[idx].Product.Hex(),
		Quantity:  req.Quantity,
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, events.CartItemUpdated, cart, change)
	return s.hydrate(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string, req models.RemoveCartItemRequest) (*models.CartView, error) {
	lineID, err := ParseObjectID("itemId", itemID)
	if err != nil {
		return nil, err
	}

	cart, idx, err := s.findLine(ctx, req.SessionID, lineID)
	if err != nil {
		return nil, err
	}

	change := events.CartChange{
		SessionID: cart.SessionID,
		ItemID:    itemID,
		ProductID: cart.Items[idx].Product.Hex(),
	}
	cart.RemoveItem(idx)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, events.CartItemRemoved, cart, change)
	return s.hydrate(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (*models.CartView, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, global.NotFound(MsgCartNotFound).WithCause(err)
		}
		return nil, errors.Wrap(err, "loading cart")
	}

	cart.Clear()
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, events.CartCleared, cart, events.CartChange{SessionID: sessionID})
	return s.hydrate(ctx, cart)
}

func (s *CartService) findLine(ctx context.Context, sessionID string, lineID bson.ObjectID) (*models.Cart, int, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if global.IsNotFound(err) {
			return nil, -1, global.NotFound(MsgCartNotFound).WithCause(err)
		}
		return nil, -1, errors.Wrap(err, "loading cart")
	}

	idx := cart.FindItem(lineID)
	if idx < 0 {
		return nil, -1, global.NotFound(MsgItemNotFound)
	}
	return cart, idx, nil
}

// persist recomputes the totals and writes the cart back.
func (s *CartService) persist(ctx context.Context, cart *models.Cart) error {
	cart.CalculateTotals()
	cart.Touch(s.now())

	if err := s.carts.Save(ctx, cart); err != nil {
		return errors.Wrap(err, "saving cart")
	}
	return nil
}

func (s *CartService) hydrate(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	products, err := s.products.GetByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, errors.Wrap(err, "loading cart products")
	}

	byID := make(map[bson.ObjectID]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return cart.Hydrate(byID), nil
}

func (s *CartService) emit(ctx context.Context, eventType string, cart *models.Cart, change events.CartChange) {
	change.TotalItems = cart.TotalItems
	change.TotalAmount = cart.TotalAmount
	publish(ctx, s.publisher, s.logger, events.New(eventType, cart.SessionID, change))
}
