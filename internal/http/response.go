package http

import (
	"net/http"

	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/httpjson"
)

// APIError is the wire shape for every failed request.
type APIError struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	httpjson.Write(w, status, v)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	httpjson.Write(w, status, map[string]any{"error": APIError{Kind: "error", Message: msg}})
}

// FailErr renders a fault with its kind and field when err is one of the
// structured fault types, falling back to a plain message otherwise.
func FailErr(w http.ResponseWriter, status int, err error) {
	kind := fault.Kind(err)
	if kind == "" {
		kind = "error"
	}
	httpjson.Write(w, status, map[string]any{"error": APIError{
		Kind:    kind,
		Field:   fault.Field(err),
		Message: err.Error(),
	}})
}
