package service_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/cart-demo/internal/domain"
	"github.com/nikolayk812/cart-demo/internal/port"
	"github.com/nikolayk812/cart-demo/internal/repository"
	"github.com/nikolayk812/cart-demo/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newService(t *testing.T) *service.CartService {
	t.Helper()

	return service.NewCartService(repository.NewCart(), currency.USD, zaptest.NewLogger(t))
}

func TestCartService_CreateCart(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	ownerID, err := svc.CreateCart(ctx)
	require.NoError(t, err)

	_, err = uuid.Parse(ownerID)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, view.OwnerID)
	assert.Empty(t, view.Items)
	assert.Equal(t, "USD 0.00", view.Total.String())

	deleted, err := svc.DeleteCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestCartService_AddItem(t *testing.T) {
	product := randomProduct(t)

	tests := []struct {
		name      string
		input     service.AddItemInput
		wantTotal string
		wantError error
	}{
		{
			name: "add item: ok",
			input: service.AddItemInput{
				Product:   &product,
				UnitPrice: price("10.005"),
				Quantity:  3,
			},
			wantTotal: "USD 30.00",
		},
		{
			name: "nil product: error",
			input: service.AddItemInput{
				UnitPrice: price("1.00"),
				Quantity:  1,
			},
			wantError: domain.ErrNullProduct,
		},
		{
			name: "nil unit price: error",
			input: service.AddItemInput{
				Product:  &product,
				Quantity: 1,
			},
			wantError: domain.ErrInvalidUnitPrice,
		},
		{
			name: "nil product reported before nil price: error",
			input: service.AddItemInput{
				Quantity: -1,
			},
			wantError: domain.ErrNullProduct,
		},
		{
			name: "negative unit price: error",
			input: service.AddItemInput{
				Product:   &product,
				UnitPrice: price("-0.01"),
				Quantity:  1,
			},
			wantError: domain.ErrInvalidUnitPrice,
		},
		{
			name: "negative quantity: error",
			input: service.AddItemInput{
				Product:   &product,
				UnitPrice: price("1.00"),
				Quantity:  -1,
			},
			wantError: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			ctx := t.Context()
			ownerID := gofakeit.UUID()

			view, err := svc.AddItem(ctx, ownerID, tt.input)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.True(t, service.IsValidation(err))

				stored, err := svc.GetCart(ctx, ownerID)
				require.NoError(t, err)
				assert.Empty(t, stored.Items)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, view.Total.String())
			require.Len(t, view.Items, 1)
			assert.True(t, view.Items[0].Product().Equal(*tt.input.Product))
		})
	}
}

func TestCartService_AddItemMerges(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	a := randomProduct(t)
	b := randomProduct(t)

	_, err := svc.AddItem(ctx, ownerID, service.AddItemInput{Product: &a, UnitPrice: price("5.00"), Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, ownerID, service.AddItemInput{Product: &b, UnitPrice: price("1.00"), Quantity: 1})
	require.NoError(t, err)

	view, err := svc.AddItem(ctx, ownerID, service.AddItemInput{Product: &a, UnitPrice: price("6.00"), Quantity: 3})
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].Product().Equal(a))
	assert.Equal(t, 5, view.Items[0].Quantity())
	assert.Equal(t, "6.00", view.Items[0].UnitPrice().StringFixed(2))
	assert.True(t, view.Items[1].Product().Equal(b))
	assert.Equal(t, "USD 31.00", view.Total.String())
}

func TestCartService_Remove(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	a := randomProduct(t)
	b := randomProduct(t)
	for _, p := range []domain.Product{a, b} {
		_, err := svc.AddItem(ctx, ownerID, service.AddItemInput{Product: &p, UnitPrice: price("1.00"), Quantity: 1})
		require.NoError(t, err)
	}

	removed, err := svc.RemoveProduct(ctx, ownerID, a.Code())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveProduct(ctx, ownerID, a.Code())
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveAt(ctx, ownerID, 1)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveAt(ctx, ownerID, -1)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveAt(ctx, ownerID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	view, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_RemoveOnUnknownOwnerStoresNothing(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	ownerID := uuid.NewString()

	removed, err := svc.RemoveAt(ctx, ownerID, 0)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveProduct(ctx, ownerID, gofakeit.Int64())
	require.NoError(t, err)
	assert.False(t, removed)

	deleted, err := svc.DeleteCart(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCartService_StoreErrorsAreWrapped(t *testing.T) {
	svc := service.NewCartService(failingRepo{}, currency.EUR, zaptest.NewLogger(t))
	ctx := t.Context()
	product := randomProduct(t)

	_, err := svc.GetCart(ctx, "owner")
	require.ErrorIs(t, err, errStore)
	assert.Contains(t, err.Error(), "get cart")

	_, err = svc.AddItem(ctx, "owner", service.AddItemInput{Product: &product, UnitPrice: price("1"), Quantity: 1})
	require.ErrorIs(t, err, errStore)
	assert.False(t, service.IsValidation(err))
	assert.Contains(t, err.Error(), "add item")

	_, err = svc.RemoveProduct(ctx, "owner", product.Code())
	require.ErrorIs(t, err, errStore)

	_, err = svc.RemoveAt(ctx, "owner", 0)
	require.ErrorIs(t, err, errStore)

	_, err = svc.DeleteCart(ctx, "owner")
	require.ErrorIs(t, err, errStore)

	_, err = svc.CreateCart(ctx)
	require.ErrorIs(t, err, errStore)
}

func TestCartService_EmptyOwnerID(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetCart(t.Context(), "")
	require.EqualError(t, err, "get cart: ownerID is empty")
}

var errStore = errors.New("store unavailable")

type failingRepo struct{}

var _ port.CartRepository = failingRepo{}

func (failingRepo) GetCart(context.Context, string) (*domain.Cart, error) {
	return nil, errStore
}

func (failingRepo) CreateCart(context.Context, string) error {
	return errStore
}

func (failingRepo) UpdateCart(context.Context, string, func(*domain.Cart) error) error {
	return errStore
}

func (failingRepo) DeleteCart(context.Context, string) (bool, error) {
	return false, errStore
}

func randomProduct(t *testing.T) domain.Product {
	t.Helper()

	return domain.NewProduct(gofakeit.Int64(), gofakeit.ProductName())
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
