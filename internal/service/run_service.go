package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/pipeline"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/runlog"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/store"
)

// RunService orchestrates pipeline runs: it creates the per-run log, invokes
// the pipeline, writes the artifact to the injected store and registers the
// run in an in-process registry. Concurrent uploads are safe; every run owns
// its own log and intermediate tables.
type RunService struct {
	artifacts   store.ArtifactStore
	previewRows int
	log         zerolog.Logger

	mu   sync.RWMutex
	runs map[string]*model.Run
}

// NewRunService creates a new RunService writing artifacts to the provided
// store. previewRows bounds the enriched-data preview attached to each run.
func NewRunService(artifacts store.ArtifactStore, previewRows int, log zerolog.Logger) *RunService {
	return &RunService{
		artifacts:   artifacts,
		previewRows: previewRows,
		log:         log.With().Str("component", "run_service").Logger(),
		runs:        make(map[string]*model.Run),
	}
}

// Process executes one pipeline run over the uploaded bytes. It always
// registers and returns a Run carrying the full log transcript; when the
// pipeline fails, the returned error is the typed pipeline error for that
// same run (*pipeline.ParseError, *pipeline.SchemaError or
// *pipeline.ProcessingError).
func (s *RunService) Process(filename string, raw []byte) (*model.Run, error) {
	runID := uuid.New().String()
	rlog := runlog.New()
	started := time.Now().UTC()

	run := &model.Run{
		ID:        runID,
		Filename:  filename,
		StartedAt: started,
	}

	rlog.Infof("run %s started: processing %s (%d bytes)", runID, filename, len(raw))

	result, err := pipeline.Run(raw, rlog)
	if err != nil {
		rlog.Errorf("run failed: %v", err)
		run.Status = model.RunStatusFailed
		run.FinishedAt = time.Now().UTC()
		run.ErrorKind = errorKind(err)
		run.ErrorDetail = err.Error()
		var schemaErr *pipeline.SchemaError
		if errors.As(err, &schemaErr) {
			run.MissingColumns = schemaErr.MissingColumns
		}
		run.Transcript = rlog.Transcript()
		s.register(run)

		event := s.log.Error().Err(err).Str("run_id", runID).Str("kind", run.ErrorKind)
		var procErr *pipeline.ProcessingError
		if errors.As(err, &procErr) && len(procErr.Stack) > 0 {
			event = event.Bytes("stack", procErr.Stack)
		}
		event.Msg("pipeline run failed")
		return run, err
	}

	key := fmt.Sprintf("processed_%s.xlsx", runID)
	if perr := s.artifacts.Put(key, result.Artifact); perr != nil {
		rlog.Errorf("could not store artifact: %v", perr)
		rlog.Errorf("run failed: %v", apperrors.ErrFailedToStoreArtifact)
		run.Status = model.RunStatusFailed
		run.FinishedAt = time.Now().UTC()
		run.ErrorKind = pipeline.KindProcessingError
		run.ErrorDetail = apperrors.ErrFailedToStoreArtifact.Error()
		run.Transcript = rlog.Transcript()
		s.register(run)

		s.log.Error().Err(perr).Str("run_id", runID).Msg("artifact store write failed")
		return run, &pipeline.ProcessingError{Err: perr}
	}
	rlog.Infof("artifact stored as %s", key)
	rlog.Infof("run completed successfully")

	run.Status = model.RunStatusCompleted
	run.FinishedAt = time.Now().UTC()
	run.RowCount = len(result.Enriched.Records)
	run.Portfolio = &result.Portfolio
	run.Sectors = result.Sectors
	run.Preview = buildPreview(result.Enriched, s.previewRows)
	run.ArtifactKey = key
	run.Transcript = rlog.Transcript()
	s.register(run)

	s.log.Info().
		Str("run_id", runID).
		Str("filename", filename).
		Int("rows", run.RowCount).
		Int("sectors", len(run.Sectors)).
		Msg("pipeline run completed")
	return run, nil
}

// GetRun returns a registered run or apperrors.ErrRunNotFound.
func (s *RunService) GetRun(id string) (*model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, apperrors.ErrRunNotFound
	}
	return run, nil
}

// GetArtifact returns the processed workbook for a run along with its
// download filename. Failed runs have no artifact.
func (s *RunService) GetArtifact(id string) (string, []byte, error) {
	run, err := s.GetRun(id)
	if err != nil {
		return "", nil, err
	}
	if run.ArtifactKey == "" {
		return "", nil, apperrors.ErrArtifactNotFound
	}
	data, err := s.artifacts.Get(run.ArtifactKey)
	if err != nil {
		return "", nil, err
	}
	return run.ArtifactKey, data, nil
}

// GetTranscript returns the plain-text log transcript for a run.
func (s *RunService) GetTranscript(id string) (string, error) {
	run, err := s.GetRun(id)
	if err != nil {
		return "", err
	}
	return run.Transcript, nil
}

func (s *RunService) register(run *model.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

// buildPreview renders the first n enriched rows as column-name keyed maps
// for the JSON response.
func buildPreview(enriched *model.EnrichedDataset, n int) []map[string]interface{} {
	if n > len(enriched.Records) {
		n = len(enriched.Records)
	}
	preview := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		rec := enriched.Records[i]
		row := make(map[string]interface{}, len(enriched.Columns)+len(model.DerivedColumns))
		for col, name := range enriched.Columns {
			if col < len(rec.Cells) {
				row[name] = rec.Cells[col]
			} else {
				row[name] = ""
			}
		}
		row[model.ColumnInvestmentValue] = rec.InvestmentValue
		row[model.ColumnCurrentValue] = rec.CurrentValue
		row[model.ColumnProfitLoss] = rec.ProfitLoss
		row[model.ColumnStatus] = rec.Status
		row[model.ColumnHighRiskFlag] = rec.HighRiskFlag
		preview = append(preview, row)
	}
	return preview
}

func errorKind(err error) string {
	var parseErr *pipeline.ParseError
	var schemaErr *pipeline.SchemaError
	switch {
	case errors.As(err, &parseErr):
		return pipeline.KindParseError
	case errors.As(err, &schemaErr):
		return pipeline.KindSchemaError
	default:
		return pipeline.KindProcessingError
	}
}
