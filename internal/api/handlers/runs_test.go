package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/testutil"
)

const testMaxUpload = 1 << 20

func setupRunHandler(t *testing.T) (*RunHandler, *service.RunService) {
	t.Helper()
	svc := testutil.NewTestRunService(t)
	return NewRunHandler(svc, testMaxUpload), svc
}

func validWorkbook(t *testing.T) []byte {
	t.Helper()
	return testutil.BuildWorkbook(t, testutil.StandardColumns(), [][]interface{}{
		testutil.PortfolioRow(10, 15, 2, "High", "Tech"),
	})
}

func TestRunHandler_Upload(t *testing.T) {
	t.Run("returns 201 with summaries and download URLs", func(t *testing.T) {
		handler, _ := setupRunHandler(t)

		req := testutil.NewUploadRequest(t, "/api/runs", "file", "portfolio.xlsx", validWorkbook(t))
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response RunResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != string(model.RunStatusCompleted) {
			t.Errorf("Expected status completed, got %q", response.Status)
		}
		if response.RowCount != 1 {
			t.Errorf("Expected 1 row, got %d", response.RowCount)
		}
		if response.PortfolioSummary == nil || response.PortfolioSummary.NetProfitLoss != 10 {
			t.Errorf("Unexpected portfolio summary: %+v", response.PortfolioSummary)
		}
		if len(response.SectorSummary) != 1 || response.SectorSummary[0].Sector != "Tech" {
			t.Errorf("Unexpected sector summary: %+v", response.SectorSummary)
		}
		if len(response.Preview) != 1 {
			t.Errorf("Expected preview, got %+v", response.Preview)
		}
		if response.ArtifactURL != "/api/runs/"+response.ID+"/artifact" {
			t.Errorf("Unexpected artifact URL %q", response.ArtifactURL)
		}
		if response.LogURL != "/api/runs/"+response.ID+"/log" {
			t.Errorf("Unexpected log URL %q", response.LogURL)
		}
	})

	t.Run("returns 400 with missing columns for schema failures", func(t *testing.T) {
		handler, _ := setupRunHandler(t)
		raw := testutil.BuildWorkbook(t,
			[]string{model.ColumnBuyPrice, model.ColumnCurrentPrice, model.ColumnQuantity, model.ColumnRiskLevel},
			[][]interface{}{{1, 2, 3, "Low"}},
		)

		req := testutil.NewUploadRequest(t, "/api/runs", "file", "broken.xlsx", raw)
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response RunResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Error == nil {
			t.Fatal("Expected error detail")
		}
		if response.Error.Kind != "schema_error" {
			t.Errorf("Expected schema_error, got %q", response.Error.Kind)
		}
		if len(response.Error.MissingColumns) != 1 || response.Error.MissingColumns[0] != model.ColumnSector {
			t.Errorf("Expected missing columns [Sector], got %v", response.Error.MissingColumns)
		}
		if response.LogURL == "" {
			t.Error("Expected log URL on failed runs")
		}
		if response.ArtifactURL != "" {
			t.Error("Failed runs must not advertise an artifact URL")
		}
	})

	t.Run("returns 500 when the artifact cannot be stored", func(t *testing.T) {
		svc := testutil.NewTestRunServiceWithStore(t, &testutil.BrokenArtifactStore{
			Err: errors.New("disk full"),
		})
		handler := NewRunHandler(svc, testMaxUpload)

		req := testutil.NewUploadRequest(t, "/api/runs", "file", "portfolio.xlsx", validWorkbook(t))
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}

		var response RunResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Error == nil {
			t.Fatal("Expected error detail")
		}
		if response.Error.Kind != "processing_error" {
			t.Errorf("Expected processing_error, got %q", response.Error.Kind)
		}
		if response.ArtifactURL != "" {
			t.Error("Failed runs must not advertise an artifact URL")
		}
		if response.LogURL == "" {
			t.Error("Expected log URL on failed runs")
		}
	})

	t.Run("rejects oversized bodies while reading them", func(t *testing.T) {
		handler, _ := setupRunHandler(t)
		big := bytes.Repeat([]byte("x"), testMaxUpload+8192)

		req := testutil.NewUploadRequest(t, "/api/runs", "file", "big.xlsx", big)
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects non-xlsx content before running the pipeline", func(t *testing.T) {
		handler, _ := setupRunHandler(t)

		req := testutil.NewUploadRequest(t, "/api/runs", "file", "data.xlsx", []byte("csv,pretending"))
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects requests without a file field", func(t *testing.T) {
		handler, _ := setupRunHandler(t)

		req := testutil.NewUploadRequest(t, "/api/runs", "attachment", "portfolio.xlsx", validWorkbook(t))
		w := httptest.NewRecorder()

		handler.Upload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRunHandler_GetRun(t *testing.T) {
	t.Run("returns a registered run", func(t *testing.T) {
		handler, svc := setupRunHandler(t)
		run, err := svc.Process("portfolio.xlsx", validWorkbook(t))
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/"+run.ID,
			map[string]string{"runId": run.ID})
		w := httptest.NewRecorder()

		handler.GetRun(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response RunResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if response.ID != run.ID {
			t.Errorf("Expected run %s, got %s", run.ID, response.ID)
		}
	})

	t.Run("returns 404 for unknown runs", func(t *testing.T) {
		handler, _ := setupRunHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/unknown",
			map[string]string{"runId": "unknown"})
		w := httptest.NewRecorder()

		handler.GetRun(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestRunHandler_DownloadArtifact(t *testing.T) {
	t.Run("streams the workbook with attachment headers", func(t *testing.T) {
		handler, svc := setupRunHandler(t)
		run, err := svc.Process("portfolio.xlsx", validWorkbook(t))
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/"+run.ID+"/artifact",
			map[string]string{"runId": run.ID})
		w := httptest.NewRecorder()

		handler.DownloadArtifact(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Errorf("Unexpected content type %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "processed_"+run.ID+".xlsx") {
			t.Errorf("Unexpected content disposition %q", cd)
		}
		if w.Body.Len() == 0 {
			t.Error("Expected workbook bytes in body")
		}
	})

	t.Run("returns 404 for failed runs", func(t *testing.T) {
		handler, svc := setupRunHandler(t)
		run, _ := svc.Process("noise.xlsx", []byte("not a workbook"))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/"+run.ID+"/artifact",
			map[string]string{"runId": run.ID})
		w := httptest.NewRecorder()

		handler.DownloadArtifact(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestRunHandler_DownloadLog(t *testing.T) {
	t.Run("serves the transcript for completed runs", func(t *testing.T) {
		handler, svc := setupRunHandler(t)
		run, err := svc.Process("portfolio.xlsx", validWorkbook(t))
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/"+run.ID+"/log",
			map[string]string{"runId": run.ID})
		w := httptest.NewRecorder()

		handler.DownloadLog(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("Unexpected content type %q", ct)
		}
		if !strings.Contains(w.Body.String(), "run completed successfully") {
			t.Errorf("Transcript missing completion marker:\n%s", w.Body.String())
		}
	})

	t.Run("serves the transcript for failed runs too", func(t *testing.T) {
		handler, svc := setupRunHandler(t)
		run, _ := svc.Process("noise.xlsx", []byte("not a workbook"))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/runs/"+run.ID+"/log",
			map[string]string{"runId": run.ID})
		w := httptest.NewRecorder()

		handler.DownloadLog(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "run failed") {
			t.Errorf("Transcript missing failure marker:\n%s", w.Body.String())
		}
	})
}
