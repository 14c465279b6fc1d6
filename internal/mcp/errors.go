package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/member"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		return &APIError{Code: "MEMBER_NOT_FOUND", Message: "member not found", RecoveryHint: "Call list_members for valid IDs"}
	case errors.Is(err, member.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", RecoveryHint: "Check required arguments"}
	default:
		return nil
	}
}

// toolError turns a service error into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
