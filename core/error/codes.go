// File: codes.go
// Title: Error Code Definitions
// Description: Defines the machine-readable error codes used across mChat,
//              grouped by concern, with category and validity helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package error

// Code is a machine-readable error classification
type Code string

const (
	// General codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Command dispatch codes
	CodeCommandNotFound Code = "COMMAND_NOT_FOUND"
	CodeCommandSyntax   Code = "COMMAND_SYNTAX"
	CodeExecutionFailed Code = "EXECUTION_FAILED"

	// Configuration codes
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Persistence codes
	CodeHistoryError Code = "HISTORY_ERROR"

	// Gateway codes
	CodeGatewayError Code = "GATEWAY_ERROR"
)

// String returns the code as a string
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether the code is one of the defined codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeCommandNotFound, CodeCommandSyntax, CodeExecutionFailed,
		CodeConfigError, CodeInvalidConfig, CodeHistoryError, CodeGatewayError:
		return true
	default:
		return false
	}
}

// Category returns the concern group of the code
func (c Code) Category() string {
	switch c {
	case CodeCommandNotFound, CodeCommandSyntax, CodeExecutionFailed:
		return "dispatch"
	case CodeConfigError, CodeInvalidConfig:
		return "config"
	case CodeHistoryError:
		return "persistence"
	case CodeGatewayError:
		return "gateway"
	default:
		return "general"
	}
}
