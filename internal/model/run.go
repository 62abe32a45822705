package model

import "time"

// RunStatus indicates how a pipeline run ended.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the record of one pipeline execution, kept in the in-process
// registry for the life of the server. It carries everything the caller
// needs to render a result or a failure, including the full log transcript.
type Run struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Status     RunStatus `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	RowCount  int                      `json:"rowCount"`
	Portfolio *PortfolioSummary        `json:"portfolioSummary,omitempty"`
	Sectors   []SectorTotal            `json:"sectorSummary,omitempty"`
	Preview   []map[string]interface{} `json:"preview,omitempty"`

	// ArtifactKey is the store key of the processed spreadsheet; empty for
	// failed runs.
	ArtifactKey string `json:"-"`

	// Transcript is the full run log, one "<timestamp> | <LEVEL> | <message>"
	// line per entry.
	Transcript string `json:"-"`

	ErrorKind   string `json:"errorKind,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`

	// MissingColumns lists the absent required columns for schema failures,
	// so callers fetching the run later can still see exactly what to fix.
	MissingColumns []string `json:"missingColumns,omitempty"`
}
