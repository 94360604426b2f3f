package httpapi

import (
	"errors"
	"net/http"

	"nofa-store-service/internal/domain/shared"
)

// statusFor maps domain errors onto HTTP status codes. Anything not in
// the taxonomy is a 500; the handler logs it and returns a generic body.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrItemNotFound),
		errors.Is(err, shared.ErrImageNotFound),
		errors.Is(err, shared.ErrNoBidsFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrItemClosed),
		errors.Is(err, shared.ErrBidAmountTooLow),
		errors.Is(err, shared.ErrBidAmountBelowStarting):
		return http.StatusConflict
	case errors.Is(err, shared.ErrItemNameRequired),
		errors.Is(err, shared.ErrInvalidStartingPrice),
		errors.Is(err, shared.ErrBidAmountInvalid),
		errors.Is(err, shared.ErrBidderNameRequired),
		errors.Is(err, shared.ErrBidderEmailRequired),
		errors.Is(err, shared.ErrImageFilenameRequired),
		errors.Is(err, shared.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope. Internal errors never leak
// their message to the client.
func errorBody(err error, status int) map[string]string {
	if status == http.StatusInternalServerError {
		return map[string]string{"error": "internal server error"}
	}
	return map[string]string{"error": err.Error()}
}
