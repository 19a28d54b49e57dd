package review

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/rule"
)

// RawFinding is the offenses of the engine on one line.
type RawFinding struct {
	Line int
	// Messages are in the order the engine emitted them. Identical messages appear once.
	Messages []string
	// RuleIDs[i] is the rule which emitted Messages[i]. It may be empty.
	RuleIDs  []string
	Severity rule.Severity
}

// analyze runs the engine once and groups its offenses by line.
func (c *Checker) analyze(ctx context.Context, file ModifiedFile, cfg *config.StyleGuide) ([]*RawFinding, error) {
	contents := file.Contents()
	if contents == "" {
		return nil, nil
	}
	if cfg.MaxFileSize > 0 && int64(len(contents)) > cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, len(contents), cfg.MaxFileSize)
	}
	offenses, err := c.runEngine(ctx, file.Filename(), contents, cfg)
	if err != nil {
		return nil, err
	}
	return mergeOffenses(offenses), nil
}

type engineResult struct {
	offenses []*rule.Offense
	err      error
}

// runEngine calls the engine in its own goroutine so that a panic or an
// overrun of the file timeout fails only this file.
func (c *Checker) runEngine(ctx context.Context, filename, contents string, cfg *config.StyleGuide) ([]*rule.Offense, error) {
	if c.fileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fileTimeout)
		defer cancel()
	}
	ch := make(chan *engineResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- &engineResult{err: fmt.Errorf("%w: %v", ErrEnginePanic, r)}
			}
		}()
		offenses, err := c.engine.Analyze(ctx, filename, contents, cfg)
		ch <- &engineResult{offenses: offenses, err: err}
	}()
	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("analyze %s: %w", filename, res.err)
		}
		return res.offenses, nil
	case <-ctx.Done():
		if c.fileTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrFileTimeout, c.fileTimeout)
		}
		return nil, fmt.Errorf("analyze %s: %w", filename, ctx.Err())
	}
}

// mergeOffenses groups offenses by line in the order lines first appear.
// The severity of a finding is the highest severity among its offenses.
func mergeOffenses(offenses []*rule.Offense) []*RawFinding {
	var findings []*RawFinding
	byLine := map[int]*RawFinding{}
	for _, o := range offenses {
		if o == nil {
			continue
		}
		f, ok := byLine[o.Line]
		if !ok {
			f = &RawFinding{
				Line:     o.Line,
				Severity: o.Severity,
			}
			byLine[o.Line] = f
			findings = append(findings, f)
		}
		f.Severity = max(f.Severity, o.Severity)
		if slices.Contains(f.Messages, o.Message) {
			continue
		}
		f.Messages = append(f.Messages, o.Message)
		f.RuleIDs = append(f.RuleIDs, o.RuleID)
	}
	return findings
}
