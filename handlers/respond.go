package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"p9e.in/sitestock/config"
	"p9e.in/sitestock/pkg/apperr"
)

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders a classified error. Expected failures always arrive
// here as *apperr.Error so callers never see a raw driver message for a
// connection problem, and validation errors keep their field map.
func writeError(w http.ResponseWriter, err *apperr.Error) {
	body := map[string]interface{}{
		"error": err.Message,
		"kind":  errKindLabel(err.Kind),
	}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	writeJSON(w, err.Status(), body)
}

func errKindLabel(k apperr.Kind) string {
	switch k {
	case apperr.Unavailable:
		return "unavailable"
	case apperr.NotFound:
		return "not_found"
	case apperr.Invalid:
		return "invalid"
	default:
		return "rejected"
	}
}

// database resolves the shared handle or reports the fixed unavailable
// message. Handlers start with this so a dead backend never panics a
// request.
func database(w http.ResponseWriter) (*gorm.DB, bool) {
	db, err := config.Database()
	if err != nil {
		writeError(w, apperr.New(apperr.Unavailable, apperr.UnavailableMessage))
		return nil, false
	}
	return db, true
}
