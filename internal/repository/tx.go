package repository

import (
	"context"

	"github.com/nikolayk812/cart-demo/internal/domain"
)

// withCart runs fn against a copy of the owner's cart while holding the write
// lock. The copy replaces the stored cart only if fn returns no error. An
// unknown owner whose cart is still empty afterwards is not stored.
func withCart[T any](ctx context.Context, r *cartRepository, ownerID string, fn func(cart *domain.Cart) (T, error)) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	// The caller may have given up while waiting for the lock
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	var working *domain.Cart
	stored, ok := r.carts[ownerID]
	if ok {
		working = stored.Clone()
	} else {
		working = domain.NewCart()
	}

	result, err := fn(working)
	if err != nil {
		return zero, err
	}

	if !ok && working.IsEmpty() {
		return result, nil
	}

	// Commit
	r.carts[ownerID] = working

	return result, nil
}
