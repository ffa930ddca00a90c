// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"daily-broadcast/internal/api/types"
	"daily-broadcast/internal/util"
)

// maxBodyBytes bounds request bodies; every payload here is a handful of short fields.
const maxBodyBytes = 1 << 16

// responder holds the JSON helpers shared by all handlers.
type responder struct {
	logger *slog.Logger
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto status codes. failMessage is the
// generic text returned for internal failures.
func (h responder) respondWithError(w http.ResponseWriter, r *http.Request, err error, failMessage string) {
	if ve, ok := util.AsValidationError(err); ok {
		h.respondWithJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Invalid data", Errors: ve.Fields})
		return
	}

	statusCode := http.StatusInternalServerError
	message := failMessage

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid data"
	case util.IsError(err, util.ErrBroadcastNotFound):
		statusCode = http.StatusNotFound
		message = "Broadcast not found"
	case util.IsError(err, util.ErrWalletNotFound):
		statusCode = http.StatusNotFound
		message = "Wallet not found"
	case util.IsError(err, util.ErrViewNotFound):
		statusCode = http.StatusNotFound
		message = "Ad view not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err, "method", r.Method, "path", r.URL.Path)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Message: message})
}

// decodeJSON reads a JSON body into dst. A value of the wrong JSON type is
// reported against its field, anything else against "body".
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		ve := &util.ValidationError{}
		var typeErr *json.UnmarshalTypeError
		var sizeErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			ve.Add("body", "request body is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			ve.Add(typeErr.Field, "must be a JSON "+typeErr.Type.Kind().String())
		case errors.As(err, &sizeErr):
			ve.Add("body", "request body is too large")
		default:
			ve.Add("body", "must be a valid JSON object")
		}
		return ve
	}
	return nil
}
