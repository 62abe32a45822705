package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/pipeline"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/testutil"
)

func TestRunService_Process(t *testing.T) {
	t.Run("completed run is registered with summaries and artifact", func(t *testing.T) {
		svc := testutil.NewTestRunService(t)
		raw := testutil.BuildWorkbook(t, testutil.StandardColumns(), [][]interface{}{
			testutil.PortfolioRow(10, 15, 2, "High", "Tech"),
		})

		run, err := svc.Process("portfolio.xlsx", raw)
		if err != nil {
			t.Fatalf("Process returned unexpected error: %v", err)
		}

		if run.Status != model.RunStatusCompleted {
			t.Errorf("Expected status completed, got %s", run.Status)
		}
		if run.RowCount != 1 {
			t.Errorf("Expected 1 row, got %d", run.RowCount)
		}
		if run.Portfolio == nil || run.Portfolio.NetProfitLoss != 10 {
			t.Errorf("Unexpected portfolio summary: %+v", run.Portfolio)
		}
		if len(run.Preview) != 1 {
			t.Fatalf("Expected 1 preview row, got %d", len(run.Preview))
		}
		if run.Preview[0][model.ColumnStatus] != pipeline.StatusProfit {
			t.Errorf("Expected preview Status Profit, got %v", run.Preview[0][model.ColumnStatus])
		}

		name, data, err := svc.GetArtifact(run.ID)
		if err != nil {
			t.Fatalf("GetArtifact failed: %v", err)
		}
		if name != "processed_"+run.ID+".xlsx" {
			t.Errorf("Unexpected artifact name %q", name)
		}
		if len(data) == 0 {
			t.Error("Expected artifact bytes, got none")
		}

		transcript, err := svc.GetTranscript(run.ID)
		if err != nil {
			t.Fatalf("GetTranscript failed: %v", err)
		}
		if !strings.Contains(transcript, "run completed successfully") {
			t.Errorf("Transcript missing completion marker:\n%s", transcript)
		}
	})

	t.Run("schema failure registers a failed run with transcript", func(t *testing.T) {
		svc := testutil.NewTestRunService(t)
		raw := testutil.BuildWorkbook(t,
			[]string{model.ColumnBuyPrice, model.ColumnCurrentPrice, model.ColumnQuantity, model.ColumnRiskLevel},
			[][]interface{}{{1, 2, 3, "Low"}},
		)

		run, err := svc.Process("broken.xlsx", raw)
		if err == nil {
			t.Fatal("Expected an error, got none")
		}

		var schemaErr *pipeline.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("Expected *pipeline.SchemaError, got %T", err)
		}
		if run.Status != model.RunStatusFailed {
			t.Errorf("Expected status failed, got %s", run.Status)
		}
		if run.ErrorKind != pipeline.KindSchemaError {
			t.Errorf("Expected kind %s, got %s", pipeline.KindSchemaError, run.ErrorKind)
		}

		// The transcript survives the failure and carries the failure marker.
		transcript, terr := svc.GetTranscript(run.ID)
		if terr != nil {
			t.Fatalf("GetTranscript failed: %v", terr)
		}
		if !strings.Contains(transcript, "run failed") {
			t.Errorf("Transcript missing failure marker:\n%s", transcript)
		}
		if !strings.Contains(transcript, "Sector") {
			t.Errorf("Transcript should name the missing column:\n%s", transcript)
		}

		// Failed runs have no artifact.
		if _, _, aerr := svc.GetArtifact(run.ID); !errors.Is(aerr, apperrors.ErrArtifactNotFound) {
			t.Errorf("Expected ErrArtifactNotFound, got %v", aerr)
		}
	})

	t.Run("unreadable bytes register a parse failure", func(t *testing.T) {
		svc := testutil.NewTestRunService(t)

		run, err := svc.Process("noise.bin", []byte("definitely not xlsx"))
		if err == nil {
			t.Fatal("Expected an error, got none")
		}
		var parseErr *pipeline.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *pipeline.ParseError, got %T", err)
		}
		if run.ErrorKind != pipeline.KindParseError {
			t.Errorf("Expected kind %s, got %s", pipeline.KindParseError, run.ErrorKind)
		}
	})

	t.Run("artifact store write failure registers a processing failure", func(t *testing.T) {
		svc := testutil.NewTestRunServiceWithStore(t, &testutil.BrokenArtifactStore{
			Err: errors.New("disk full"),
		})
		raw := testutil.BuildWorkbook(t, testutil.StandardColumns(), [][]interface{}{
			testutil.PortfolioRow(10, 15, 2, "High", "Tech"),
		})

		run, err := svc.Process("portfolio.xlsx", raw)
		if err == nil {
			t.Fatal("Expected an error, got none")
		}

		var procErr *pipeline.ProcessingError
		if !errors.As(err, &procErr) {
			t.Fatalf("Expected *pipeline.ProcessingError, got %T", err)
		}
		if run.Status != model.RunStatusFailed {
			t.Errorf("Expected status failed, got %s", run.Status)
		}
		if run.ErrorKind != pipeline.KindProcessingError {
			t.Errorf("Expected kind %s, got %s", pipeline.KindProcessingError, run.ErrorKind)
		}

		// The transcript collected up to the failure is kept: it records the
		// store error and ends with the failure marker.
		transcript, terr := svc.GetTranscript(run.ID)
		if terr != nil {
			t.Fatalf("GetTranscript failed: %v", terr)
		}
		if !strings.Contains(transcript, "could not store artifact") {
			t.Errorf("Transcript should record the store failure:\n%s", transcript)
		}
		if !strings.Contains(transcript, "run failed") {
			t.Errorf("Transcript missing failure marker:\n%s", transcript)
		}

		if _, _, aerr := svc.GetArtifact(run.ID); !errors.Is(aerr, apperrors.ErrArtifactNotFound) {
			t.Errorf("Expected ErrArtifactNotFound, got %v", aerr)
		}
	})

	t.Run("identical uploads get distinct run IDs and artifacts", func(t *testing.T) {
		svc := testutil.NewTestRunService(t)
		raw := testutil.BuildWorkbook(t, testutil.StandardColumns(), [][]interface{}{
			testutil.PortfolioRow(10, 15, 2, "High", "Tech"),
		})

		first, err := svc.Process("same.xlsx", raw)
		if err != nil {
			t.Fatalf("First process failed: %v", err)
		}
		second, err := svc.Process("same.xlsx", raw)
		if err != nil {
			t.Fatalf("Second process failed: %v", err)
		}

		if first.ID == second.ID {
			t.Error("Expected distinct run IDs for repeated uploads")
		}
		if first.ArtifactKey == second.ArtifactKey {
			t.Error("Expected distinct artifact keys for repeated uploads")
		}
	})
}

func TestRunService_GetRun(t *testing.T) {
	t.Run("unknown run ID returns ErrRunNotFound", func(t *testing.T) {
		svc := testutil.NewTestRunService(t)

		if _, err := svc.GetRun("nope"); !errors.Is(err, apperrors.ErrRunNotFound) {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
		if _, err := svc.GetTranscript("nope"); !errors.Is(err, apperrors.ErrRunNotFound) {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
		if _, _, err := svc.GetArtifact("nope"); !errors.Is(err, apperrors.ErrRunNotFound) {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
	})
}
