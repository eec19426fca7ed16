// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/gameconf/internal/format"
	"github.com/ManuGH/gameconf/internal/fsutil"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/store"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError maps err to a status code and writes {"error": ...}.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, schema.ErrSchemaNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrInvalidSchemaID),
		errors.Is(err, schema.ErrMissingMeta),
		errors.Is(err, format.ErrUnknownFormat),
		errors.Is(err, fsutil.ErrInvalidPath),
		errors.Is(err, store.ErrNoConfigFile),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, fsutil.ErrOutsideRoot):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotWritable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
