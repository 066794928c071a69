package handlers

import (
	"net/http"

	"github.com/vlat-exam/api/internal/api/types"
)

// NotFound answers every unmatched route, echoing the requested URI.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, types.NotFoundResponse{
		APIResponse: types.APIResponse{Success: false, Message: "Endpoint not found"},
		Path:        r.URL.RequestURI(),
	})
}
