package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/cart-demo/internal/domain"
	"github.com/nikolayk812/cart-demo/internal/port"
)

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCart() port.CartRepository {
	return &cartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx.Err: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.carts[ownerID]
	if !ok {
		return domain.NewCart(), nil
	}

	return stored.Clone(), nil
}

func (r *cartRepository) CreateCart(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ctx.Err: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[ownerID]; ok {
		return fmt.Errorf("ownerID %s: %w", ownerID, port.ErrCartExists)
	}
	r.carts[ownerID] = domain.NewCart()

	return nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if fn == nil {
		return fmt.Errorf("fn is nil")
	}

	_, err := withCart(ctx, r, ownerID, func(cart *domain.Cart) (struct{}, error) {
		return struct{}{}, fn(cart)
	})
	if err != nil {
		return fmt.Errorf("withCart: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("ctx.Err: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[ownerID]; !ok {
		return false, nil
	}
	delete(r.carts, ownerID)

	return true, nil
}
