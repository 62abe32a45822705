package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/api/response"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/pipeline"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RunHandler handles pipeline run HTTP requests: upload, inspection and
// artifact/log download.
type RunHandler struct {
	runService     *service.RunService
	maxUploadBytes int64
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runService *service.RunService, maxUploadBytes int64) *RunHandler {
	return &RunHandler{
		runService:     runService,
		maxUploadBytes: maxUploadBytes,
	}
}

// RunErrorDetail describes a pipeline failure to the caller. MissingColumns
// is populated for schema errors so the caller can list exactly what to fix.
type RunErrorDetail struct {
	Kind           string   `json:"kind"`
	Message        string   `json:"message"`
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// RunResponse represents a pipeline run in API responses. The log transcript
// is always downloadable, for failed runs too.
type RunResponse struct {
	ID               string                   `json:"id"`
	Filename         string                   `json:"filename"`
	Status           string                   `json:"status"`
	RowCount         int                      `json:"rowCount"`
	PortfolioSummary *model.PortfolioSummary  `json:"portfolioSummary,omitempty"`
	SectorSummary    []model.SectorTotal      `json:"sectorSummary,omitempty"`
	Preview          []map[string]interface{} `json:"preview,omitempty"`
	ArtifactURL      string                   `json:"artifactUrl,omitempty"`
	LogURL           string                   `json:"logUrl"`
	Error            *RunErrorDetail          `json:"error,omitempty"`
}

func newRunResponse(run *model.Run) RunResponse {
	resp := RunResponse{
		ID:               run.ID,
		Filename:         run.Filename,
		Status:           string(run.Status),
		RowCount:         run.RowCount,
		PortfolioSummary: run.Portfolio,
		SectorSummary:    run.Sectors,
		Preview:          run.Preview,
		LogURL:           fmt.Sprintf("/api/runs/%s/log", run.ID),
	}
	if run.Status == model.RunStatusCompleted {
		resp.ArtifactURL = fmt.Sprintf("/api/runs/%s/artifact", run.ID)
	}
	if run.ErrorKind != "" {
		resp.Error = &RunErrorDetail{
			Kind:           run.ErrorKind,
			Message:        run.ErrorDetail,
			MissingColumns: run.MissingColumns,
		}
	}
	return resp
}

// Upload accepts a multipart spreadsheet upload and executes one pipeline
// run over it.
//
// Endpoint: POST /api/runs, multipart field "file"
// Response: 201 Created with RunResponse on success
// Error: 400 for rejected uploads and parse/schema failures (both carry the
// log URL), 500 for unexpected processing failures
func (h *RunHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the body before reading it so oversized uploads stop early; the
	// slack covers multipart framing around a file at the size limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+4096)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to parse form or request too large (max %d bytes)", h.maxUploadBytes),
			err.Error())
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoFile.Error(),
			"ensure the multipart field is named 'file'")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read uploaded file", err.Error())
		return
	}

	if err := validation.ValidateUpload(fileHeader.Filename, fileHeader.Size, h.maxUploadBytes, content); err != nil {
		response.RespondError(w, http.StatusBadRequest, "upload rejected", err.Error())
		return
	}

	run, runErr := h.runService.Process(fileHeader.Filename, content)
	if runErr != nil {
		respondJSON(w, failureStatus(runErr), newRunResponse(run))
		return
	}

	respondJSON(w, http.StatusCreated, newRunResponse(run))
}

// GetRun returns metadata for a single run.
//
// Endpoint: GET /api/runs/{runId}
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	run, err := h.runService.GetRun(runID)
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error":  "run not found",
			"detail": runID,
		})
		return
	}

	respondJSON(w, http.StatusOK, newRunResponse(run))
}

// DownloadArtifact streams the processed workbook for a completed run.
//
// Endpoint: GET /api/runs/{runId}/artifact
func (h *RunHandler) DownloadArtifact(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	filename, data, err := h.runService.GetArtifact(runID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRunNotFound) || errors.Is(err, apperrors.ErrArtifactNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"error":  "artifact not found",
				"detail": runID,
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  apperrors.ErrFailedToRetrieveArtifact.Error(),
			"detail": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // streaming artifact body, client disconnects are not actionable
	w.Write(data)
}

// DownloadLog returns the plain-text run transcript, available for both
// completed and failed runs.
//
// Endpoint: GET /api/runs/{runId}/log
func (h *RunHandler) DownloadLog(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	transcript, err := h.runService.GetTranscript(runID)
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error":  "run not found",
			"detail": runID,
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "run_"+runID+".log"))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // streaming text body
	io.WriteString(w, transcript)
}

// failureStatus maps pipeline errors to HTTP status codes: structural input
// and contract violations are the caller's to fix (400), anything
// unexpected is ours (500).
func failureStatus(err error) int {
	var parseErr *pipeline.ParseError
	var schemaErr *pipeline.SchemaError
	if errors.As(err, &parseErr) || errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
