package review

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/linthound/linthound/pkg/rule"
)

// LineViolation is a relevant line with at least one message.
type LineViolation struct {
	Line         int           `json:"line"`
	DiffPosition int           `json:"diff_position"`
	Messages     []string      `json:"messages"`
	RuleIDs      []string      `json:"rule_ids,omitempty"`
	Severity     rule.Severity `json:"-"`
}

// FileViolation is a file with at least one LineViolation.
// LineViolations are sorted by line in ascending order.
type FileViolation struct {
	Filename       string           `json:"filename"`
	LineViolations []*LineViolation `json:"line_violations"`
}

// EngineFailure is a file the engine couldn't analyze.
// The file is excluded from Result.Violations.
type EngineFailure struct {
	Filename string
	Cause    error
}

func (e *EngineFailure) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Filename, e.Cause)
}

func (e *EngineFailure) Unwrap() error {
	return e.Cause
}

// PositionWarning is a relevant line with findings but without a diff position.
// The line is excluded from the report.
type PositionWarning struct {
	Filename string
	Line     int
	Messages []string
}

func (w *PositionWarning) String() string {
	return fmt.Sprintf("%s:%d is relevant to the change but has no diff position", w.Filename, w.Line)
}

// Result is the outcome of a review pass.
// Violations and Failures both empty means no violation was found.
type Result struct {
	Violations []*FileViolation
	Failures   []*EngineFailure
	Warnings   []*PositionWarning
}

// Partial reports whether some files couldn't be analyzed.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// filter keeps findings on lines relevant to the change.
func filter(findings []*RawFinding, file ModifiedFile) []*RawFinding {
	var relevant []*RawFinding
	for _, f := range findings {
		if file.IsRelevant(f.Line) {
			relevant = append(relevant, f)
		}
	}
	return relevant
}

// buildFileViolation returns nil if no finding can be reported.
func buildFileViolation(file ModifiedFile, findings []*RawFinding) (*FileViolation, []*PositionWarning) {
	findings = slices.Clone(findings)
	slices.SortStableFunc(findings, func(a, b *RawFinding) int {
		return cmp.Compare(a.Line, b.Line)
	})
	var (
		lines    []*LineViolation
		warnings []*PositionWarning
	)
	for _, f := range findings {
		if len(f.Messages) == 0 {
			continue
		}
		pos, ok := file.DiffPosition(f.Line)
		if !ok {
			warnings = append(warnings, &PositionWarning{
				Filename: file.Filename(),
				Line:     f.Line,
				Messages: f.Messages,
			})
			continue
		}
		lines = append(lines, &LineViolation{
			Line:         f.Line,
			DiffPosition: pos,
			Messages:     f.Messages,
			RuleIDs:      f.RuleIDs,
			Severity:     f.Severity,
		})
	}
	if len(lines) == 0 {
		return nil, warnings
	}
	return &FileViolation{
		Filename:       file.Filename(),
		LineViolations: lines,
	}, warnings
}
