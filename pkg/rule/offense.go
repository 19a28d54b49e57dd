package rule

import "fmt"

// Severity is the severity of an offense.
type Severity int

const (
	// SeverityConvention is a style issue. Every built-in rule reports at this level.
	SeverityConvention Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityConvention:
		return "convention"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromString parses a severity reported by an engine.
// Unknown values map to SeverityWarning.
func SeverityFromString(s string) Severity {
	switch s {
	case "convention", "refactor", "info", "style":
		return SeverityConvention
	case "warning", "warn":
		return SeverityWarning
	case "error", "fatal":
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Offense is one issue reported by a rule engine.
// Line and Column are 1-based and absolute in the analyzed contents.
type Offense struct {
	Line     int
	Column   int
	RuleID   string
	Message  string
	Severity Severity
}

func (o *Offense) String() string {
	return fmt.Sprintf("%d:%d %s: %s", o.Line, o.Column, o.RuleID, o.Message)
}
