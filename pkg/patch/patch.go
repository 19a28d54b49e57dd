// Package patch maps the lines of a changed file to the unified diff of the change.
//
// A line is relevant if the diff adds it. The diff position of a line follows
// the convention of GitHub review comments: the line just below the first hunk
// header is position 1 and every later hunk header takes a position too.
package patch

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

const devNull = "/dev/null"

// FileDiff is the change of a single file in a multi-file diff.
type FileDiff struct {
	// Name is the path of the file after the change without the b/ prefix.
	Name    string
	Deleted bool
	Hunks   []*diff.Hunk
}

// Parse parses the output of `git diff` or `diff -u`.
func Parse(data []byte) ([]*FileDiff, error) {
	fds, err := diff.ParseMultiFileDiff(data)
	if err != nil {
		return nil, fmt.Errorf("parse a unified diff: %w", err)
	}
	files := make([]*FileDiff, 0, len(fds))
	for _, fd := range fds {
		f := &FileDiff{
			Name:  trimPrefix(fd.NewName, "b/"),
			Hunks: fd.Hunks,
		}
		if fd.NewName == devNull {
			f.Name = trimPrefix(fd.OrigName, "a/")
			f.Deleted = true
		}
		files = append(files, f)
	}
	return files, nil
}

// ParseHunks parses a patch without file headers such as the patch of a pull request file.
func ParseHunks(patch string) ([]*diff.Hunk, error) {
	if patch == "" {
		return nil, nil
	}
	if !strings.HasSuffix(patch, "\n") {
		patch += "\n"
	}
	hunks, err := diff.ParseHunks([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("parse hunks: %w", err)
	}
	return hunks, nil
}

func trimPrefix(name, prefix string) string {
	// names from `diff -u` may carry a timestamp after a tab
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimPrefix(name, prefix)
}

// File is a changed file with its contents after the change.
type File struct {
	name      string
	contents  string
	added     map[int]bool
	positions map[int]int
}

// NewFile resolves the positions of the lines of contents in hunks.
func NewFile(name, contents string, hunks []*diff.Hunk) *File {
	f := &File{
		name:      name,
		contents:  contents,
		added:     map[int]bool{},
		positions: map[int]int{},
	}
	pos := 0
	for i, hunk := range hunks {
		if i > 0 {
			// the hunk header
			pos++
		}
		line := int(hunk.NewStartLine)
		body := strings.TrimSuffix(string(hunk.Body), "\n")
		if body == "" {
			continue
		}
		offset := 0
		for _, l := range strings.Split(body, "\n") {
			if hunk.OrigNoNewlineAt > 0 && int32(offset) == hunk.OrigNoNewlineAt { //nolint:gosec
				// `\ No newline at end of file` removed by the parser
				pos++
			}
			offset += len(l) + 1
			pos++
			if l == "" {
				// a context line whose leading space was stripped
				f.positions[line] = pos
				line++
				continue
			}
			switch l[0] {
			case '+':
				f.added[line] = true
				f.positions[line] = pos
				line++
			case '-', '\\':
			default:
				f.positions[line] = pos
				line++
			}
		}
	}
	return f
}

func (f *File) Filename() string {
	return f.name
}

func (f *File) Contents() string {
	return f.contents
}

// IsRelevant reports whether the change adds the line.
func (f *File) IsRelevant(line int) bool {
	return f.added[line]
}

func (f *File) DiffPosition(line int) (int, bool) {
	pos, ok := f.positions[line]
	return pos, ok
}

// AddedLines returns the number of lines the change adds.
func (f *File) AddedLines() int {
	return len(f.added)
}
