package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/linthound/linthound/pkg/patch"
	"github.com/linthound/linthound/pkg/review"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func (c *Controller) readDiff() ([]byte, error) {
	if c.param.DiffPath == "-" {
		b, err := io.ReadAll(c.param.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read a diff from stdin: %w", err)
		}
		return b, nil
	}
	b, err := afero.ReadFile(c.fs, c.abs(c.param.DiffPath))
	if err != nil {
		return nil, fmt.Errorf("read a diff file: %w", err)
	}
	return b, nil
}

func (c *Controller) abs(p string) string {
	if filepath.IsAbs(p) || c.param.PWD == "" {
		return p
	}
	return filepath.Join(c.param.PWD, p)
}

// collectFromDiff returns the target files of a unified diff with their contents in the working tree.
func (c *Controller) collectFromDiff(logE *logrus.Entry) ([]review.ModifiedFile, error) {
	b, err := c.readDiff()
	if err != nil {
		return nil, err
	}
	diffs, err := patch.Parse(b)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	var files []review.ModifiedFile
	for _, d := range diffs {
		logE := logE.WithField("file", d.Name)
		if d.Deleted || len(d.Hunks) == 0 {
			continue
		}
		if !c.cfg.Target(d.Name) {
			logE.Debug("skip a file which isn't a target")
			continue
		}
		contents, err := afero.ReadFile(c.fs, c.abs(d.Name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logE.Warn("skip a file which doesn't exist in the working tree")
				continue
			}
			return nil, fmt.Errorf("read a file: %w", err)
		}
		files = append(files, patch.NewFile(d.Name, string(contents), d.Hunks))
	}
	return files, nil
}
