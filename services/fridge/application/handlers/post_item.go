package handlers

import (
	"net/http"

	"github.com/ghuser/smartfridge/pkg/errhttp"
	"github.com/ghuser/smartfridge/pkg/httpx"
	pkgvalidator "github.com/ghuser/smartfridge/pkg/validator"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// AddItemRequest is the request body for POST /items. Field rules are
// enforced by the inventory so every violation is reported at once.
type AddItemRequest struct {
	TypeID     int64    `json:"type_id"     example:"1"`
	ItemID     string   `json:"item_id"     example:"123e4567-e89b-12d3-a456-426614174000"`
	TypeName   *string  `json:"type_name"   example:"Bacon"`
	FillFactor *float64 `json:"fill_factor" example:"0.5"`
} // @name AddItemRequest

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item validation failed: type_id: Must be greater than 0"`
} // @name ErrorResponse

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, production bool) *PostItemHandler {
	return &PostItemHandler{svc: svc, production: production}
}

// Execute puts an item in the fridge.
//
//	@Summary		Add item
//	@Description	Stores a new item and creates or renames its type
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body	AddItemRequest	true	"Item to add"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	err := h.svc.Inventory.AddItem(r.Context(), appsvcs.AddItemCommand{
		TypeID:     req.TypeID,
		ItemID:     req.ItemID,
		TypeName:   req.TypeName,
		FillFactor: req.FillFactor,
	})
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	httpx.NoContent(w)
}
