package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/linthound/linthound/pkg/review"
	"github.com/linthound/linthound/pkg/rule"
	"github.com/linthound/linthound/pkg/sarif"
)

type colorFunc func(a ...any) string

// Logger writes the human readable report.
type Logger struct {
	stdout io.Writer
	red    colorFunc
	yellow colorFunc
}

func NewLogger(stdout io.Writer) *Logger {
	return &Logger{
		stdout: stdout,
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

func (l *Logger) level(s rule.Severity) string {
	label := strings.ToUpper(s.String())
	switch s {
	case rule.SeverityError:
		return l.red(label)
	case rule.SeverityWarning:
		return l.yellow(label)
	default:
		return label
	}
}

// Violation writes a line violation followed by its messages, one per line.
func (l *Logger) Violation(filename string, lv *review.LineViolation) {
	fmt.Fprintf(l.stdout, "%s %s:%d (diff position %d)\n", l.level(lv.Severity), filename, lv.Line, lv.DiffPosition)
	for _, msg := range lv.Messages {
		fmt.Fprintf(l.stdout, "  %s\n", msg)
	}
}

func (l *Logger) Failure(f *review.EngineFailure) {
	fmt.Fprintf(l.stdout, "%s %s\n  %v\n", l.red("FAILED"), f.Filename, f.Cause)
}

func (c *Controller) output(result *review.Result) error {
	switch c.param.Format {
	case "", FormatText:
		c.outputText(result)
		return nil
	case FormatJSON:
		return c.outputJSON(result)
	case FormatSARIF:
		return c.outputSARIF(result)
	default:
		return fmt.Errorf("unsupported output format: %s", c.param.Format)
	}
}

func (c *Controller) outputText(result *review.Result) {
	for _, fv := range result.Violations {
		for _, lv := range fv.LineViolations {
			c.logger.Violation(fv.Filename, lv)
		}
	}
	for _, f := range result.Failures {
		c.logger.Failure(f)
	}
}

type jsonFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type jsonWarning struct {
	Filename string   `json:"filename"`
	Line     int      `json:"line"`
	Messages []string `json:"messages"`
}

type jsonReport struct {
	Violations []*review.FileViolation `json:"violations"`
	Failures   []*jsonFailure          `json:"failures,omitempty"`
	Warnings   []*jsonWarning          `json:"warnings,omitempty"`
}

func (c *Controller) outputJSON(result *review.Result) error {
	report := &jsonReport{
		Violations: result.Violations,
	}
	if report.Violations == nil {
		report.Violations = []*review.FileViolation{}
	}
	for _, f := range result.Failures {
		report.Failures = append(report.Failures, &jsonFailure{Filename: f.Filename, Error: f.Cause.Error()})
	}
	for _, w := range result.Warnings {
		report.Warnings = append(report.Warnings, &jsonWarning{Filename: w.Filename, Line: w.Line, Messages: w.Messages})
	}
	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode the report as JSON: %w", err)
	}
	return nil
}

const ruleAnalysisFailure = "analysis_failure"

func (c *Controller) outputSARIF(result *review.Result) error {
	rules := rule.DefaultRules()
	sarifRules := make([]sarif.Rule, 0, len(rules)+1)
	for _, r := range rules {
		sarifRules = append(sarifRules, sarif.Rule{
			ID:               r.ID(),
			ShortDescription: sarif.Message{Text: r.Description()},
		})
	}
	sarifRules = append(sarifRules, sarif.Rule{
		ID:               ruleAnalysisFailure,
		ShortDescription: sarif.Message{Text: "The file couldn't be analyzed"},
	})
	log := sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "linthound",
						InformationURI: "https://github.com/linthound/linthound",
						Version:        c.param.Version,
						Rules:          sarifRules,
					},
				},
				Results: buildSARIFResults(result),
			},
		},
	}
	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func sarifLevel(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return sarif.LevelError
	case rule.SeverityWarning:
		return sarif.LevelWarning
	default:
		return sarif.LevelNote
	}
}

func sarifLocation(filename string, line int) []sarif.Location {
	return []sarif.Location{
		{
			PhysicalLocation: sarif.PhysicalLocation{
				ArtifactLocation: sarif.ArtifactLocation{URI: filename},
				Region:           sarif.Region{StartLine: line},
			},
		},
	}
}

func buildSARIFResults(result *review.Result) []sarif.Result {
	results := []sarif.Result{}
	for _, fv := range result.Violations {
		for _, lv := range fv.LineViolations {
			for i, msg := range lv.Messages {
				ruleID := ""
				if i < len(lv.RuleIDs) {
					ruleID = lv.RuleIDs[i]
				}
				results = append(results, sarif.Result{
					RuleID:    ruleID,
					Level:     sarifLevel(lv.Severity),
					Message:   sarif.Message{Text: msg},
					Locations: sarifLocation(fv.Filename, lv.Line),
				})
			}
		}
	}
	for _, f := range result.Failures {
		results = append(results, sarif.Result{
			RuleID:    ruleAnalysisFailure,
			Level:     sarif.LevelError,
			Message:   sarif.Message{Text: f.Cause.Error()},
			Locations: sarifLocation(f.Filename, 1),
		})
	}
	return results
}
