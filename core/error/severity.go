// File: severity.go
// Title: Error Severity Definitions
// Description: Defines the severity scale attached to structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package error

// Severity indicates how serious an error is
type Severity int

const (
	// SeverityLow marks expected, user-correctable conditions
	SeverityLow Severity = iota + 1

	// SeverityMedium marks operational problems worth investigating
	SeverityMedium

	// SeverityHigh marks failures that degrade the service
	SeverityHigh

	// SeverityCritical marks failures requiring immediate attention
	SeverityCritical
)

// String returns the canonical name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether the severity is defined
func (s Severity) IsValid() bool {
	return s >= SeverityLow && s <= SeverityCritical
}
