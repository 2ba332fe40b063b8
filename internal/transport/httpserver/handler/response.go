package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"home-inventory-go/internal/validate"
)

// Request bodies above this size are cut off before decoding.
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeData wraps a successful payload in the single-key resource envelope,
// e.g. {"products": [...]}.
func writeData(w http.ResponseWriter, status int, key string, payload interface{}) {
	writeJSON(w, status, map[string]interface{}{key: payload})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":  message,
		"status": "error",
	})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

// decodeValid reads the body once, checks the raw JSON object against the
// schema, then decodes the same bytes into dst. Validating the raw object
// catches missing and mistyped fields that a lenient struct decode would
// silently zero out.
func decodeValid(r *http.Request, schema validate.Schema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidBody
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return errInvalidBody
	}

	if err := schema.Validate(raw); err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errInvalidBody
	}
	return nil
}
