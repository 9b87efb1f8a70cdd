package port

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/nikolayk812/cart-demo/internal/domain"
)

var ErrCartExists = errors.New("cart already exists")

// CartRepository keeps one cart per owner.
type CartRepository interface {
	// GetCart returns a copy of the owner's cart, or an empty cart when none is stored.
	GetCart(ctx context.Context, ownerID string) (*domain.Cart, error)
	// CreateCart stores an empty cart. It fails with ErrCartExists when the
	// owner already has one.
	CreateCart(ctx context.Context, ownerID string) error
	// UpdateCart applies fn to a copy of the owner's cart and stores the copy
	// only when fn succeeds. A call that leaves an unknown owner's cart empty
	// stores nothing.
	UpdateCart(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}
