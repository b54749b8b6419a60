package http

import (
	"net/http"

	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)
	version := h.services.AppInfoService.GetAppVersion(ctx)

	utils.WriteJSON(w, buildInfo.VersionResponse(version), http.StatusOK)
}

// health reports 503 while the database does not answer.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	response := models.HealthResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(ctx),
	}

	status := http.StatusOK
	if err := h.services.AppInfoService.CheckHealth(ctx); err != nil {
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, response, status)
}
