package mcp

import (
	"errors"
	"fmt"

	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/empetur/consolidacao/internal/sheet"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors are
// returned as INTERNAL with the original message.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, session.ErrNotLoaded):
		return &APIError{Code: "NOT_LOADED", Message: "source not loaded", RecoveryHint: "Check the server logs for the load error"}
	case errors.Is(err, session.ErrStaleSource):
		return &APIError{Code: "STALE_SOURCE", Message: "source file changed since it was loaded and there are unsaved edits", RecoveryHint: "Call save with force=true to overwrite, or reload with discard=true to drop the edits"}
	case errors.Is(err, session.ErrUnsavedChanges):
		return &APIError{Code: "UNSAVED_CHANGES", Message: "session has unsaved edits", RecoveryHint: "Call save first, or reload with discard=true"}
	case errors.Is(err, session.ErrUnknownPage):
		return &APIError{Code: "UNKNOWN_PAGE", Message: err.Error(), RecoveryHint: "Use gabinete or campo"}
	case errors.Is(err, repository.ErrSourceNotFound):
		return &APIError{Code: "SOURCE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check CONSOLIDACAO_SOURCE_PATH"}
	case errors.Is(err, repository.ErrMalformedTable):
		return &APIError{Code: "MALFORMED_SOURCE", Message: err.Error(), RecoveryHint: "Fix or replace the source file, then reload"}
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		return &APIError{Code: "INVALID_FORMAT", Message: err.Error(), RecoveryHint: "Use xlsx or csv"}
	case errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}

var errInvalidParams = errors.New("invalid params")
