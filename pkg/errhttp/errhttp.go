// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/smartfridge/pkg/httpx"
	fridgedomain "github.com/ghuser/smartfridge/services/fridge/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	WriteSafeError(w, err, false)
}

// WriteSafeError is WriteError with 5xx messages replaced by the status text
// when isProduction is set.
func WriteSafeError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, fridgedomain.ErrInvalidItemID),
		errors.Is(err, fridgedomain.ErrItemValidation):
		return http.StatusBadRequest // 400
	// Returned by the stores' keyed Get. The inventory operations treat
	// unknown ids as no-ops, so these reach a client only through a lookup
	// built on Get.
	case errors.Is(err, fridgedomain.ErrItemNotFound),
		errors.Is(err, fridgedomain.ErrItemTypeNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, fridgedomain.ErrDuplicateItem):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
