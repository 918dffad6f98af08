package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
	"github.com/eggnunes/crmidea-sub000/internal/infra/database"
)

// ProductHandler lista o catálogo de produtos — a tela de confirmação de
// import usa a lista para montar o dropdown de overrides.
type ProductHandler struct {
	productRepo *database.ProductRepository
}

func NewProductHandler(productRepo *database.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.ListAll(r.Context())
	if err != nil {
		http.Error(w, "falha ao listar produtos", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []*entity.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(products)
}
