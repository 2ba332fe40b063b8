package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	productdomain "home-inventory-go/internal/domain/product"
	"home-inventory-go/internal/transport/httpserver/middleware"
	"home-inventory-go/internal/validate"
)

// Uploaded dumps can be much larger than regular request bodies.
const maxImportBytes = 16 << 20

type importEnvelope struct {
	Products   json.RawMessage `json:"products"`
	Categories json.RawMessage `json:"categories"`
}

// ImportInventory loads a previously exported dump into the house. The body
// is either a multipart upload ("file" field) or raw JSON. Every element is
// validated up front; one bad element rejects the whole batch, the writes
// run inside a single transaction.
func (h *Handlers) ImportInventory(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	body, err := importBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid import file")
		return
	}

	var env importEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid import file")
		return
	}

	productElems, err := arrayElements(env.Products)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid import file")
		return
	}
	categoryElems, err := arrayElements(env.Categories)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid import file")
		return
	}

	var failures []string
	payload := productdomain.ImportPayload{}

	for i, raw := range categoryElems {
		var category productdomain.ImportCategory
		if msg := validateElement(raw, categorySchema, &category); msg != "" {
			failures = append(failures, fmt.Sprintf("categories[%d]: %s", i, msg))
			continue
		}
		payload.Categories = append(payload.Categories, category)
	}

	for i, raw := range productElems {
		var p productdomain.ImportProduct
		if msg := validateElement(raw, importProductSchema, &p); msg != "" {
			failures = append(failures, fmt.Sprintf("products[%d]: %s", i, msg))
			continue
		}
		payload.Products = append(payload.Products, p)
	}

	if len(failures) > 0 {
		writeError(w, http.StatusBadRequest, strings.Join(failures, "; "))
		return
	}

	products, err := h.Products.Import(r.Context(), houseID, u.ID, payload)
	if err != nil {
		h.log.InternalError("import: batch failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	h.log.Info("import: batch applied", "house_id", houseID, "products", len(payload.Products), "categories", len(payload.Categories))
	writeData(w, http.StatusOK, "products", products)
}

// ExportInventory emits the house's inventory in the import payload shape,
// so a dump re-imports cleanly even after every id is reassigned.
func (h *Handlers) ExportInventory(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	payload, err := h.Products.Export(r.Context(), houseID)
	if err != nil {
		h.log.InternalError("export: export failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="inventory-export.json"`)
	writeJSON(w, http.StatusOK, payload)
}

// importBody pulls the JSON out of a multipart "file" field when present,
// otherwise reads the request body directly.
func importBody(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxImportBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
}

// arrayElements accepts either a JSON array or a single object, the two
// shapes historical export files used for the products field.
func arrayElements(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	return []json.RawMessage{trimmed}, nil
}

// validateElement returns the first failing rule's message, or "" and fills
// dst on success.
func validateElement(raw json.RawMessage, schema validate.Schema, dst interface{}) string {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "must be an object"
	}
	if err := schema.Validate(obj); err != nil {
		return err.Error()
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return "malformed fields"
	}
	return ""
}
