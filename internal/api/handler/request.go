// internal/api/handler/request.go
package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"daily-broadcast/internal/util"
)

// Loosely typed request fields are kept raw and parsed here so a bad value is
// reported against its own field. Clients send numbers and flags either as
// JSON literals or as strings.

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// scalarText returns the text of a JSON number, boolean or string literal.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	if raw[0] == '{' || raw[0] == '[' {
		return "", false
	}
	return string(raw), true
}

// decimalField parses a decimal number. An absent or null field yields nil.
func decimalField(ve *util.ValidationError, field string, raw json.RawMessage, message string) *decimal.Decimal {
	if isAbsent(raw) {
		return nil
	}
	s, ok := scalarText(raw)
	if !ok || s == "" {
		ve.Add(field, message)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		ve.Add(field, message)
		return nil
	}
	return &d
}

// int64Field parses an integer. An absent or null field yields zero.
func int64Field(ve *util.ValidationError, field string, raw json.RawMessage) int64 {
	if isAbsent(raw) {
		return 0
	}
	s, ok := scalarText(raw)
	if !ok {
		ve.Add(field, "must be an integer")
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		ve.Add(field, "must be an integer")
		return 0
	}
	return n
}

// boolField parses true/false. An absent or null field yields nil.
func boolField(ve *util.ValidationError, field string, raw json.RawMessage) *bool {
	if isAbsent(raw) {
		return nil
	}
	s, ok := scalarText(raw)
	if ok && (s == "true" || s == "false") {
		b := s == "true"
		return &b
	}
	ve.Add(field, "must be true or false")
	return nil
}
