package domain

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

const pricePlaces = 2

// Item is one cart line: a product at a unit price and quantity.
// Items are values; merging produces a new Item.
type Item struct {
	product   Product
	unitPrice decimal.Decimal
	quantity  int
}

// NewItem validates its arguments in price, quantity, product order and
// truncates the unit price toward zero to two fractional digits.
func NewItem(product *Product, unitPrice decimal.Decimal, quantity int) (Item, error) {
	if unitPrice.IsNegative() {
		return Item{}, ErrInvalidUnitPrice
	}
	if quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if product == nil {
		return Item{}, ErrNullProduct
	}

	return Item{
		product:   *product,
		unitPrice: unitPrice.Truncate(pricePlaces),
		quantity:  quantity,
	}, nil
}

// MergeItem returns the item that replaces existing when product is added
// again: quantities are summed, and the incoming product and unit price win.
func MergeItem(existing Item, product *Product, unitPrice decimal.Decimal, quantity int) (Item, error) {
	if unitPrice.IsNegative() {
		return Item{}, ErrInvalidUnitPrice
	}
	// incoming quantity alone must be valid; the sum is checked for overflow
	if quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if quantity > math.MaxInt-existing.quantity {
		return Item{}, ErrInvalidQuantity
	}

	return NewItem(product, unitPrice, existing.quantity+quantity)
}

func (i Item) Product() Product {
	return i.product
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal is unit price times quantity, not rounded.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i Item) Equal(other Item) bool {
	return i.product.Equal(other.product) &&
		i.unitPrice.Equal(other.unitPrice) &&
		i.quantity == other.quantity
}

// Hash is consistent with Equal. The price is hashed in its fixed two-digit
// form so that 1.5 and 1.50 hash alike.
func (i Item) Hash() uint64 {
	d := xxhash.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(i.product.code))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(i.unitPrice.StringFixed(pricePlaces))
	binary.BigEndian.PutUint64(buf[:], uint64(i.quantity))
	_, _ = d.Write(buf[:])

	return d.Sum64()
}
