package mcp

import (
	"fmt"
	"strings"
)

// ToolError is a structured error surfaced to the MCP caller. The envelope
// keeps machine-readable codes so the agent can branch on failure class
// instead of parsing prose.
type ToolError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Tool    string                 `json:"tool,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants.
const (
	ErrCodeMissingRequired = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidValue    = "INVALID_FIELD_VALUE"
	ErrCodeInvalidAddress  = "INVALID_ADDRESS"
	ErrCodeInvalidAmount   = "INVALID_AMOUNT"
	ErrCodeInvalidNetwork  = "INVALID_NETWORK"

	ErrCodeNotFound     = "RESOURCE_NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeBackendError = "BACKEND_ERROR"
	ErrCodeRPCError     = "RPC_ERROR"
	ErrCodeTxReverted   = "TRANSACTION_REVERTED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// NewMissingFieldError reports a required field the caller left out.
func NewMissingFieldError(tool, field string) *ToolError {
	return &ToolError{
		Code:    ErrCodeMissingRequired,
		Message: fmt.Sprintf("Field '%s' is required", field),
		Tool:    tool,
		Field:   field,
		Hint:    fmt.Sprintf("Add '%s' to your request parameters", field),
	}
}

// NewInvalidAddressError reports a value that is not a hex EVM address.
func NewInvalidAddressError(tool, field string, value interface{}) *ToolError {
	return &ToolError{
		Code:    ErrCodeInvalidAddress,
		Message: fmt.Sprintf("'%v' is not a valid EVM address", value),
		Tool:    tool,
		Field:   field,
		Hint:    "Addresses are 0x-prefixed 40-hex-character strings",
	}
}

// NewInvalidAmountError reports an amount that failed decimal parsing.
func NewInvalidAmountError(tool, field string, err error) *ToolError {
	return &ToolError{
		Code:    ErrCodeInvalidAmount,
		Message: err.Error(),
		Tool:    tool,
		Field:   field,
		Hint:    "Amounts are positive decimal strings like \"1.5\"",
	}
}

// NewInvalidNetworkError reports an unknown network key.
func NewInvalidNetworkError(tool string, value interface{}, supported []string) *ToolError {
	return &ToolError{
		Code:    ErrCodeInvalidNetwork,
		Message: fmt.Sprintf("Unsupported network '%v'", value),
		Tool:    tool,
		Field:   "network",
		Hint:    "Supported networks: " + strings.Join(supported, ", "),
	}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(tool, resourceType, resourceID string) *ToolError {
	return &ToolError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
		Tool:    tool,
		Hint:    fmt.Sprintf("Verify the %s ID is correct", strings.ToLower(resourceType)),
	}
}

// NewUnauthorizedError reports a missing or rejected access key.
func NewUnauthorizedError(tool, message string) *ToolError {
	if message == "" {
		message = "Access key required"
	}
	return &ToolError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Tool:    tool,
		Hint:    "Set --access_key or the ASETTA_ACCESS_KEY environment variable",
	}
}

// NewBackendError wraps a project backend failure.
func NewBackendError(tool string, err error) *ToolError {
	return &ToolError{
		Code:    ErrCodeBackendError,
		Message: err.Error(),
		Tool:    tool,
	}
}

// NewRPCError wraps a chain read/write failure.
func NewRPCError(tool string, err error) *ToolError {
	code := ErrCodeRPCError
	if strings.Contains(err.Error(), "reverted") {
		code = ErrCodeTxReverted
	}
	return &ToolError{
		Code:    code,
		Message: err.Error(),
		Tool:    tool,
	}
}

// IsToolError checks whether err carries a structured tool error.
func IsToolError(err error) (*ToolError, bool) {
	toolErr, ok := err.(*ToolError)
	return toolErr, ok
}
