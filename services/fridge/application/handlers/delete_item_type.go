package handlers

import (
	"net/http"

	"github.com/ghuser/smartfridge/pkg/errhttp"
	"github.com/ghuser/smartfridge/pkg/httpx"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// DeleteItemTypeHandler handles DELETE /item-types/{typeID} requests.
type DeleteItemTypeHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewDeleteItemTypeHandler returns a DeleteItemTypeHandler backed by the given services.
func NewDeleteItemTypeHandler(svc *appsvcs.Services, production bool) *DeleteItemTypeHandler {
	return &DeleteItemTypeHandler{svc: svc, production: production}
}

// Execute forgets a type and every item of it.
//
//	@Summary		Forget item type
//	@Description	Removes every item of the type and then the type. A type without items is left untouched.
//	@Tags			item-types
//	@Produce		json
//	@Param			typeID	path	int	true	"Item type id"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/item-types/{typeID} [delete]
func (h *DeleteItemTypeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	typeID, ok := typeIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Inventory.ForgetType(r.Context(), typeID); err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.NoContent(w)
}
