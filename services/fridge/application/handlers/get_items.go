package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/smartfridge/pkg/errhttp"
	"github.com/ghuser/smartfridge/pkg/httpx"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// GetItemsHandler handles GET /items?fill_factor= requests.
type GetItemsHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services, production bool) *GetItemsHandler {
	return &GetItemsHandler{svc: svc, production: production}
}

// Execute lists items at or below a fill factor, one array per type.
//
//	@Summary		Items below fill factor
//	@Description	Returns items whose fill factor is at or below the threshold, grouped by type id. A missing or out of range threshold yields an empty list.
//	@Tags			items
//	@Produce		json
//	@Param			fill_factor	query		number	false	"Threshold in (0, 1]"
//	@Success		200			{array}		models.Bucket
//	@Failure		500			{object}	ErrorResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var threshold *float64
	if raw := r.URL.Query().Get("fill_factor"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = &f
		}
	}

	buckets, err := h.svc.Inventory.ItemsBelowFillFactor(r.Context(), threshold)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSONList(w, http.StatusOK, buckets)
}
