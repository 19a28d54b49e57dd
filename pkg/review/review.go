// Package review aggregates the offenses of a style engine into a report
// restricted to the lines a change touches.
//
// The caller supplies the modified files together with their relevance and
// diff position mappings. Checker runs the engine once per file, keeps the
// findings on relevant lines and groups them per file and per line so that a
// consumer can post one inline comment per LineViolation.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/rule"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"golang.org/x/sync/errgroup"
)

// ModifiedFile is a file of a change. It is read-only to Checker.
type ModifiedFile interface {
	Filename() string
	// Contents returns the full text of the file after the change.
	Contents() string
	// IsRelevant reports whether the 1-based line is part of the change.
	IsRelevant(line int) bool
	// DiffPosition returns the position of the line in the rendered diff.
	DiffPosition(line int) (int, bool)
}

// Engine analyzes the contents of a file.
// Offenses must carry absolute 1-based line numbers of contents.
type Engine interface {
	Analyze(ctx context.Context, filename, contents string, cfg *config.StyleGuide) ([]*rule.Offense, error)
}

var (
	ErrFileTooLarge = errors.New("file is too large")
	ErrEnginePanic  = errors.New("rule engine panicked")
	ErrFileTimeout  = errors.New("rule engine timed out")
)

type Checker struct {
	engine      Engine
	concurrency int
	fileTimeout time.Duration
	logE        *logrus.Entry
}

type Option func(c *Checker)

// WithConcurrency sets the number of files analyzed at the same time.
// Values lower than 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithFileTimeout bounds the time the engine may spend on a single file. 0 means unlimited.
func WithFileTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.fileTimeout = d
	}
}

func WithLogger(logE *logrus.Entry) Option {
	return func(c *Checker) {
		if logE != nil {
			c.logE = logE
		}
	}
}

func New(engine Engine, opts ...Option) *Checker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := &Checker{
		engine:      engine,
		concurrency: runtime.GOMAXPROCS(0),
		logE:        logrus.NewEntry(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fileReport is the outcome of one file. At most one of violation and failure is set.
type fileReport struct {
	violation *FileViolation
	failure   *EngineFailure
	warnings  []*PositionWarning
}

// Check reviews files with the style guide cfg. A nil cfg means config.Default().
//
// An invalid cfg fails the whole pass before any file is analyzed and the
// returned error wraps *config.ValidationError. A file the engine can't analyze
// is reported in Result.Failures and doesn't affect the other files.
// Result.Violations keeps the order of files.
func (c *Checker) Check(ctx context.Context, files []ModifiedFile, cfg *config.StyleGuide) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate the style guide: %w", err)
	}

	ctx, span := startCheckSpan(ctx, len(files))
	defer span.End()
	start := time.Now()

	reports := make([]*fileReport, len(files))
	eg := &errgroup.Group{}
	eg.SetLimit(c.concurrency)
	for i, file := range files {
		eg.Go(func() error {
			reports[i] = c.checkFile(ctx, file, cfg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("check files: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check files: %w", err)
	}

	result := &Result{}
	for _, report := range reports {
		if report.failure != nil {
			result.Failures = append(result.Failures, report.failure)
			continue
		}
		result.Warnings = append(result.Warnings, report.warnings...)
		if report.violation != nil {
			result.Violations = append(result.Violations, report.violation)
		}
	}
	setCheckSpanResult(span, result)
	recordCheckMetrics(ctx, len(files), time.Since(start), result)
	return result, nil
}

func (c *Checker) checkFile(ctx context.Context, file ModifiedFile, cfg *config.StyleGuide) *fileReport {
	logE := c.logE.WithField("file", file.Filename())
	findings, err := c.analyze(ctx, file, cfg)
	if err != nil {
		logerr.WithError(logE, err).Debug("the rule engine failed")
		recordFileFailure(ctx)
		return &fileReport{
			failure: &EngineFailure{Filename: file.Filename(), Cause: err},
		}
	}
	relevant := filter(findings, file)
	logE.WithFields(logrus.Fields{
		"findings":          len(findings),
		"relevant_findings": len(relevant),
	}).Debug("analyzed a file")
	violation, warnings := buildFileViolation(file, relevant)
	for _, w := range warnings {
		logE.WithField("line", w.Line).Debug("no diff position for a relevant line")
	}
	return &fileReport{
		violation: violation,
		warnings:  warnings,
	}
}
