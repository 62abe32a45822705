package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
)

// xlsx files are zip containers; the magic bytes are the zip local file
// header signature.
var zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}

// ValidateUpload checks an uploaded file before the pipeline sees it:
// name extension, declared size against the configured limit, and content.
// These checks are user-actionable rejections, not pipeline errors.
func ValidateUpload(filename string, size int64, maxBytes int64, content []byte) error {
	if strings.TrimSpace(filename) == "" {
		return apperrors.ErrNoFile
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".xlsx" {
		return fmt.Errorf("%w: got %q", apperrors.ErrUnsupportedFileType, ext)
	}
	if size > maxBytes || int64(len(content)) > maxBytes {
		return fmt.Errorf("%w: limit is %d bytes", apperrors.ErrFileTooLarge, maxBytes)
	}
	if len(content) == 0 {
		return apperrors.ErrEmptyFile
	}
	// Content sniff: don't trust the extension, check the container magic.
	// A corrupt-but-zip file still passes here and fails in the pipeline's
	// parse step, which is the structural error path.
	if !bytes.HasPrefix(content, zipSignature) {
		return fmt.Errorf("%w: content is not an xlsx workbook", apperrors.ErrUnsupportedFileType)
	}
	return nil
}
