package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/nikolayk812/cart-demo/internal/domain"
	"github.com/nikolayk812/cart-demo/internal/service"
)

const maxBodyBytes = 1 << 20

// CartService is the subset of service.CartService the handlers call.
type CartService interface {
	CreateCart(ctx context.Context) (string, error)
	GetCart(ctx context.Context, ownerID string) (service.CartView, error)
	AddItem(ctx context.Context, ownerID string, in service.AddItemInput) (service.CartView, error)
	RemoveProduct(ctx context.Context, ownerID string, code int64) (bool, error)
	RemoveAt(ctx context.Context, ownerID string, position int) (bool, error)
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}

// Handler serves the cart HTTP API.
type Handler struct {
	carts CartService
	lg    *zap.Logger
}

func NewHandler(carts CartService, lg *zap.Logger) *Handler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{carts: carts, lg: lg}
}

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.carts.CreateCart(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createCartResponse{OwnerID: ownerID})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.GetCart(r.Context(), chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(view))
}

func (h *Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.carts.DeleteCart(r.Context(), chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "cart_not_found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	in := service.AddItemInput{
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}
	if req.Product != nil {
		p, err := req.Product.toDomain()
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		in.Product = &p
	}

	view, err := h.carts.AddItem(r.Context(), chi.URLParam(r, "ownerID"), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(view))
}

func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.ParseInt(chi.URLParam(r, "code"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_code", err.Error())
		return
	}

	removed, err := h.carts.RemoveProduct(r.Context(), chi.URLParam(r, "ownerID"), code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removeResponse{Removed: removed})
}

func (h *Handler) RemoveAt(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_position", err.Error())
		return
	}

	removed, err := h.carts.RemoveAt(r.Context(), chi.URLParam(r, "ownerID"), position)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removeResponse{Removed: removed})
}

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrNullProduct, "null_product"},
	{domain.ErrInvalidProduct, "invalid_product"},
	{domain.ErrInvalidUnitPrice, "invalid_unit_price"},
	{domain.ErrInvalidQuantity, "invalid_quantity"},
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			writeError(w, http.StatusBadRequest, ec.code, ec.err.Error())
			return
		}
	}

	h.lg.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal", "")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
