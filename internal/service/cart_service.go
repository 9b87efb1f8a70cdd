package service

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/cart-demo/internal/domain"
	"github.com/nikolayk812/cart-demo/internal/port"
)

// AddItemInput is a request to add a product to a cart. Nil fields stand for
// values the caller did not supply.
type AddItemInput struct {
	Product   *domain.Product
	UnitPrice *decimal.Decimal
	Quantity  int
}

// CartView is a snapshot of a cart priced in the service currency.
type CartView struct {
	OwnerID string
	Items   []domain.Item
	Total   domain.Money
}

// CartService exposes cart operations keyed by owner ID.
type CartService struct {
	repo     port.CartRepository
	currency currency.Unit
	lg       *zap.Logger
}

func NewCartService(repo port.CartRepository, cur currency.Unit, lg *zap.Logger) *CartService {
	if lg == nil {
		lg = zap.NewNop()
	}

	return &CartService{
		repo:     repo,
		currency: cur,
		lg:       lg,
	}
}

// CreateCart stores an empty cart under a fresh owner ID.
func (s *CartService) CreateCart(ctx context.Context) (string, error) {
	ownerID := uuid.NewString()

	if err := s.repo.CreateCart(ctx, ownerID); err != nil {
		return "", errors.Wrap(err, "create cart")
	}

	s.lg.Debug("Cart created", zap.String("owner_id", ownerID))

	return ownerID, nil
}

func (s *CartService) GetCart(ctx context.Context, ownerID string) (CartView, error) {
	cart, err := s.repo.GetCart(ctx, ownerID)
	if err != nil {
		return CartView{}, errors.Wrap(err, "get cart")
	}

	return s.view(ownerID, cart), nil
}

// AddItem adds an item and returns the updated cart. Validation errors from
// the domain are returned as is so callers can match them with errors.Is.
func (s *CartService) AddItem(ctx context.Context, ownerID string, in AddItemInput) (CartView, error) {
	// Absent values are reported in the same order the cart checks them.
	if in.Product == nil {
		return CartView{}, domain.ErrNullProduct
	}
	if in.UnitPrice == nil {
		return CartView{}, domain.ErrInvalidUnitPrice
	}

	var updated *domain.Cart
	err := s.repo.UpdateCart(ctx, ownerID, func(cart *domain.Cart) error {
		if err := cart.AddItem(in.Product, *in.UnitPrice, in.Quantity); err != nil {
			return err
		}
		updated = cart.Clone()
		return nil
	})
	if err != nil {
		if IsValidation(err) {
			s.lg.Warn("Item rejected",
				zap.String("owner_id", ownerID),
				zap.Int64("product_code", in.Product.Code()),
				zap.Error(err),
			)
			return CartView{}, unwrapValidation(err)
		}
		return CartView{}, errors.Wrap(err, "add item")
	}

	s.lg.Debug("Item added",
		zap.String("owner_id", ownerID),
		zap.Int64("product_code", in.Product.Code()),
		zap.Stringer("unit_price", in.UnitPrice),
		zap.Int("quantity", in.Quantity),
	)

	return s.view(ownerID, updated), nil
}

// RemoveProduct removes the line for the product with the given code.
func (s *CartService) RemoveProduct(ctx context.Context, ownerID string, code int64) (bool, error) {
	var removed bool
	err := s.repo.UpdateCart(ctx, ownerID, func(cart *domain.Cart) error {
		item, ok := cart.Lookup(code)
		if !ok {
			return nil
		}
		removed = cart.RemoveItem(item.Product())
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "remove product")
	}

	s.lg.Debug("Remove product",
		zap.String("owner_id", ownerID),
		zap.Int64("product_code", code),
		zap.Bool("removed", removed),
	)

	return removed, nil
}

// RemoveAt removes the line at a zero-based insertion position.
func (s *CartService) RemoveAt(ctx context.Context, ownerID string, position int) (bool, error) {
	var removed bool
	err := s.repo.UpdateCart(ctx, ownerID, func(cart *domain.Cart) error {
		removed = cart.RemoveItemAt(position)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "remove position")
	}

	s.lg.Debug("Remove position",
		zap.String("owner_id", ownerID),
		zap.Int("position", position),
		zap.Bool("removed", removed),
	)

	return removed, nil
}

func (s *CartService) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	deleted, err := s.repo.DeleteCart(ctx, ownerID)
	if err != nil {
		return false, errors.Wrap(err, "delete cart")
	}

	s.lg.Debug("Delete cart", zap.String("owner_id", ownerID), zap.Bool("deleted", deleted))

	return deleted, nil
}

func (s *CartService) view(ownerID string, cart *domain.Cart) CartView {
	return CartView{
		OwnerID: ownerID,
		Items:   cart.Items(),
		Total: domain.Money{
			Amount:   cart.Total(),
			Currency: s.currency,
		},
	}
}

var validationErrors = []error{
	domain.ErrNullProduct,
	domain.ErrInvalidProduct,
	domain.ErrInvalidUnitPrice,
	domain.ErrInvalidQuantity,
}

// IsValidation reports whether err is a cart input validation error.
func IsValidation(err error) bool {
	return unwrapValidation(err) != nil
}

func unwrapValidation(err error) error {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}
