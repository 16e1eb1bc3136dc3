package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics: lint notes, lint warnings, then lexer and
// parser errors that stop translation.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String is the upper-case form used in pretty and JSON output.
func (s Severity) String() string {
	if l := s.Label(); l != "" {
		return strings.ToUpper(l)
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by short output and CLI flags.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return ""
}

// ParseSeverity accepts a Label in any case.
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for sev, label := range severityNames {
		if label == name {
			return Severity(sev), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (want info|warning|error)", s)
}
