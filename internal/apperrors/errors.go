package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrRunNotFound indicates that a run with the given ID does not exist
	// in the in-process registry.
	ErrRunNotFound = errors.New("run not found")

	// ErrArtifactNotFound indicates that no processed workbook exists for
	// the given key. Failed runs never produce an artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Upload errors represent rejected uploads. These are detected before the
// pipeline runs and are user-actionable.
var (
	// ErrNoFile indicates the multipart request carried no "file" field.
	ErrNoFile = errors.New("no file supplied")

	// ErrEmptyFile indicates the uploaded file has no content.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("uploaded file exceeds size limit")

	// ErrUnsupportedFileType indicates the upload is not an .xlsx workbook.
	ErrUnsupportedFileType = errors.New("unsupported file type, expected .xlsx")
)

// Operation failure errors represent system-level failures when storing or
// retrieving data. These indicate an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToStoreArtifact    = errors.New("failed to store artifact")
	ErrFailedToRetrieveArtifact = errors.New("failed to retrieve artifact")
)
