package http

import (
	"net/http"
)

// getServerVersion reports the configured version together with the build
// stamp of the binary.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
