package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopsync/internal/api/middleware"
	"shopsync/internal/app/service"
	"shopsync/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(ps *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createProduct)
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)
	r.Put("/{productID}", h.updateProduct)
	r.Delete("/{productID}", h.deleteProduct)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), userID, req)
	if err != nil {
		// A sync failure is non-fatal: the local row exists and is reported
		// alongside the error.
		if errors.Is(err, common.ErrRemoteSync) && product != nil {
			common.RespondWithErrorPayload(w, common.HTTPStatusFromError(err), err.Error(), product)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	products, err := h.productService.ListProducts(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	product, err := h.productService.GetProduct(r.Context(), userID, productID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), userID, productID, req)
	if err != nil {
		if errors.Is(err, common.ErrRemoteSync) && product != nil {
			common.RespondWithErrorPayload(w, common.HTTPStatusFromError(err), err.Error(), product)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	if err := h.productService.DeleteProduct(r.Context(), userID, productID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
