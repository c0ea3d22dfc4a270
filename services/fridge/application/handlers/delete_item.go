package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/smartfridge/pkg/errhttp"
	"github.com/ghuser/smartfridge/pkg/httpx"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// DeleteItemHandler handles DELETE /items/{itemID} requests.
type DeleteItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, production bool) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, production: production}
}

// Execute takes an item out of the fridge. Unknown ids succeed.
//
//	@Summary		Remove item
//	@Description	Removes the item with the given id; its type is kept
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path	string	true	"Item UUID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items/{itemID} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Inventory.RemoveItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.NoContent(w)
}
