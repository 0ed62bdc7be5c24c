package service

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeProducts struct {
	mu       sync.Mutex
	products map[bson.ObjectID]models.Product
	lookups  int
}

func newFakeProducts(products ...*models.Product) *fakeProducts {
	f := &fakeProducts{products: make(map[bson.ObjectID]models.Product)}
	for _, p := range products {
		f.products[p.ID] = *p
	}
	return f
}

func (f *fakeProducts) List(_ context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	p, ok := f.products[id]
	if !ok {
		return nil, errors.Wrap(global.ErrNotFound, "product")
	}
	return &p, nil
}

func (f *fakeProducts) GetByIDs(_ context.Context, ids []bson.ObjectID) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProducts) Replace(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return errors.Wrap(global.ErrNotFound, "product")
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, errors.Wrap(global.ErrNotFound, "product")
	}
	delete(f.products, id)
	return &p, nil
}

// fakeCarts stores deep copies so tests observe only what was saved.
type fakeCarts struct {
	mu    sync.Mutex
	carts map[string]models.Cart
	saves int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[string]models.Cart)}
}

func copyCart(c *models.Cart) models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem{}, c.Items...)
	return cp
}

func (f *fakeCarts) FindBySession(_ context.Context, sessionID string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[sessionID]
	if !ok {
		return nil, errors.Wrap(global.ErrNotFound, "cart")
	}
	cp := copyCart(&c)
	return &cp, nil
}

func (f *fakeCarts) Create(_ context.Context, cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cart.SessionID]; ok {
		return global.BadRequest("Duplicate field value: sessionId. Please use another value.")
	}
	f.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (f *fakeCarts) Save(_ context.Context, cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (f *fakeCarts) stored(sessionID string) (models.Cart, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[sessionID]
	return c, ok
}

type fakeCache struct {
	items       map[string]models.Product
	sets        int
	invalidated []string
	failSet     bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]models.Product)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := c.items[id]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return &p, nil
}

func (c *fakeCache) Set(_ context.Context, product *models.Product) error {
	if c.failSet {
		return errors.New("redis down")
	}
	c.sets++
	c.items[product.ID.Hex()] = *product
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.items, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
