// internal/api/types/response.go
package types

import "daily-broadcast/internal/util"

// ErrorResponse is the body of every non-2xx API response.
// Errors is only populated for validation failures.
type ErrorResponse struct {
	Message string             `json:"message"`
	Errors  []util.FieldError `json:"errors,omitempty"`
}
