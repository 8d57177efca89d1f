package handler

import (
	"net/http"

	"github.com/mossvale/mossvale/internal/api/response"
	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/catalog"
)

// ItemHandler serves the static item catalog
type ItemHandler struct {
	catalogService *catalog.Service
}

// NewItemHandler creates a new item handler
func NewItemHandler(catalogService *catalog.Service) *ItemHandler {
	return &ItemHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.catalogService.IsLoaded() {
		WriteError(w, model.ErrCatalogNotLoaded)
		return
	}

	response.JSON(w, http.StatusOK, response.ItemList{Items: h.catalogService.All()})
}
