package handlers

import (
	"net/http"

	"github.com/ghuser/smartfridge/pkg/errhttp"
	"github.com/ghuser/smartfridge/pkg/httpx"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// GetItemTypeHandler handles GET /item-types/{typeID} requests.
type GetItemTypeHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewGetItemTypeHandler returns a GetItemTypeHandler backed by the given services.
func NewGetItemTypeHandler(svc *appsvcs.Services, production bool) *GetItemTypeHandler {
	return &GetItemTypeHandler{svc: svc, production: production}
}

// Execute returns the average fill factor of a type.
//
//	@Summary		Average fill factor
//	@Description	Mean fill factor of the non-empty items of the type; 0 when there are none
//	@Tags			item-types
//	@Produce		json
//	@Param			typeID	path		int	true	"Item type id"
//	@Success		200		{number}	number
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/item-types/{typeID} [get]
func (h *GetItemTypeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	typeID, ok := typeIDParam(w, r)
	if !ok {
		return
	}

	avg, err := h.svc.Inventory.AverageFillFactor(r.Context(), typeID)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusOK, avg)
}
