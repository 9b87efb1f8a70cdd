package httpapi

import (
	"github.com/shopspring/decimal"

	"github.com/nikolayk812/cart-demo/internal/domain"
	"github.com/nikolayk812/cart-demo/internal/service"
)

// Pointer fields distinguish a missing value from a zero value.
type productRequest struct {
	Code        *int64  `json:"code"`
	Description *string `json:"description"`
}

type addItemRequest struct {
	Product   *productRequest  `json:"product"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  int              `json:"quantity"`
}

type productResponse struct {
	Code        int64  `json:"code"`
	Description string `json:"description"`
}

type itemResponse struct {
	Product   productResponse `json:"product"`
	UnitPrice string          `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"line_total"`
}

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type cartResponse struct {
	OwnerID string         `json:"owner_id"`
	Items   []itemResponse `json:"items"`
	Total   moneyResponse  `json:"total"`
}

type createCartResponse struct {
	OwnerID string `json:"owner_id"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (r *productRequest) toDomain() (domain.Product, error) {
	if r.Code == nil || r.Description == nil {
		return domain.Product{}, domain.ErrInvalidProduct
	}
	return domain.NewProduct(*r.Code, *r.Description), nil
}

func mapCartToResponse(view service.CartView) cartResponse {
	items := make([]itemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, itemResponse{
			Product: productResponse{
				Code:        item.Product().Code(),
				Description: item.Product().Description(),
			},
			UnitPrice: item.UnitPrice().StringFixed(2),
			Quantity:  item.Quantity(),
			LineTotal: item.LineTotal().String(),
		})
	}

	return cartResponse{
		OwnerID: view.OwnerID,
		Items:   items,
		Total: moneyResponse{
			Amount:   view.Total.Amount.StringFixed(2),
			Currency: view.Total.Currency.String(),
		},
	}
}
