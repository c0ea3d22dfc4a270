package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/smartfridge/pkg/httpx"
)

// typeIDParam reads the {typeID} path segment and writes a 400 when it is
// not a base-10 int64.
func typeIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "typeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid item type id " + strconv.Quote(raw)})
		return 0, false
	}
	return id, true
}
