// README: Catalog handlers for search and SKU lookups.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// Search handles GET /api/catalog/search?q=...
func (h *CatalogHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}
	products, err := h.catalog.Candidates(c.Request.Context(), q, nil)
	if err != nil {
		writeError(c, http.StatusBadGateway, "catalog unavailable")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"products": products})
}

// Lookup handles GET /api/catalog/skus?skus=A,B,C
func (h *CatalogHandler) Lookup(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("skus"))
	if raw == "" {
		writeError(c, http.StatusBadRequest, "missing skus")
		return
	}
	var skus []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skus = append(skus, s)
		}
	}
	products, err := h.catalog.FetchBySKUs(c.Request.Context(), skus)
	if err != nil {
		writeError(c, http.StatusBadGateway, "catalog unavailable")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"products": products})
}
