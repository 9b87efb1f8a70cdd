package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Cart holds the items a customer selected, ordered by when each product was
// first added. The zero value is an empty cart ready to use.
//
// A Cart is not safe for concurrent use.
type Cart struct {
	// products and items always hold the same set of product codes.
	products []Product
	items    map[int64]Item
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[int64]Item),
	}
}

// AddItem adds quantity units of product at unitPrice. Adding a product that
// is already in the cart keeps its position, sums the quantities and replaces
// the product value and unit price. On error the cart is left untouched.
func (c *Cart) AddItem(product *Product, unitPrice decimal.Decimal, quantity int) error {
	if product == nil {
		return ErrNullProduct
	}
	if unitPrice.IsNegative() {
		return ErrInvalidUnitPrice
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	existing, found := c.items[product.code]

	var (
		item Item
		err  error
	)
	if found {
		item, err = MergeItem(existing, product, unitPrice, quantity)
	} else {
		item, err = NewItem(product, unitPrice, quantity)
	}
	if err != nil {
		return err
	}

	if c.items == nil {
		c.items = make(map[int64]Item)
	}
	if found {
		c.products[slices.IndexFunc(c.products, product.Equal)] = *product
	} else {
		c.products = append(c.products, *product)
	}
	c.items[product.code] = item

	return nil
}

// RemoveItem drops the line for product and reports whether it was present.
func (c *Cart) RemoveItem(product Product) bool {
	if _, ok := c.items[product.code]; !ok {
		return false
	}

	delete(c.items, product.code)
	c.products = slices.DeleteFunc(c.products, product.Equal)

	return true
}

// RemoveItemAt drops the line at position, counted from zero in insertion
// order. Positions outside [0, Len()) report false.
func (c *Cart) RemoveItemAt(position int) bool {
	if position < 0 || position >= len(c.products) {
		return false
	}

	return c.RemoveItem(c.products[position])
}

// Total sums the line totals and rounds the sum half-to-even to two places.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.LineTotal())
	}

	return sum.RoundBank(pricePlaces)
}

// Items returns the current lines in insertion order.
// The returned slice is a copy.
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.products))
	for _, p := range c.products {
		items = append(items, c.items[p.code])
	}

	return items
}

func (c *Cart) Lookup(code int64) (Item, bool) {
	item, ok := c.items[code]
	return item, ok
}

func (c *Cart) Len() int {
	return len(c.products)
}

func (c *Cart) IsEmpty() bool {
	return len(c.products) == 0
}

func (c *Cart) Clone() *Cart {
	clone := &Cart{
		products: slices.Clone(c.products),
		items:    make(map[int64]Item, len(c.items)),
	}
	for code, item := range c.items {
		clone.items[code] = item
	}

	return clone
}
