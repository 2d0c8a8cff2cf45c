package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/models"
)

// In-memory repository implementations. They mirror the Mongo semantics
// (sentinel errors, version compare-and-swap, newest-first listing) and
// back the handler tests; nothing here talks to a database.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by hex id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := cloneUser(u)
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneUser(u)
	return &copied, nil
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if user.CartData == nil {
		user.CartData = cart.Cart{}
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Version = 1

	r.users[user.ID.Hex()] = cloneUser(*user)
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID.Hex()]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != user.Version {
		return ErrVersionConflict
	}
	for id, u := range r.users {
		if u.Email == user.Email && id != user.ID.Hex() {
			return ErrDuplicateEmail
		}
	}

	user.Version++
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID.Hex()] = cloneUser(*user)
	return nil
}

func cloneUser(u models.User) models.User {
	u.CartData = cart.Clone(u.CartData)
	return u
}

// MemoryProductRepository is an in-memory ProductRepository.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]models.Product)}
}

func (r *MemoryProductRepository) Insert(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}
	product.CreatedAt = time.Now().UTC()
	r.products[product.ID.Hex()] = *product
	return nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) List(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// MemoryOrderRepository is an in-memory OrderRepository.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Insert(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID.Hex()] = *order
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemoryOrderRepository) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range r.orders {
		if o.UserID.Hex() == userID {
			orders = append(orders, o)
		}
	}
	sortOrders(orders)
	return orders, nil
}

func (r *MemoryOrderRepository) List(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sortOrders(orders)
	return orders, nil
}

func (r *MemoryOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID.Hex()]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now().UTC()
	r.orders[order.ID.Hex()] = *order
	return nil
}

func sortOrders(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
