package handlers

import (
	"net/http"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	ArtifactStore string `json:"artifact_store"`
	Error         string `json:"error,omitempty"`
}

// Health checks the health of the system and artifact store reachability
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:        "unhealthy",
			ArtifactStore: "unavailable",
			Error:         err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response := HealthResponse{
		Status:        "healthy",
		ArtifactStore: "available",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionInfoResponse represents the version check response containing
// application version information and feature availability.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version := h.systemService.CheckVersion()

	response := VersionInfoResponse{
		AppVersion: version.AppVersion,
		Features:   version.Features,
	}

	respondJSON(w, http.StatusOK, response)
}
