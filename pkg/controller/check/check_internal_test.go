package check

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/github"
	"github.com/linthound/linthound/pkg/log"
	"github.com/linthound/linthound/pkg/review"
	"github.com/linthound/linthound/pkg/rule"
	"github.com/spf13/afero"
)

type fakePullRequestsService struct {
	sha      string
	pages    [][]*github.CommitFile
	comments []*github.PullRequestComment
	failPath string
}

func (s *fakePullRequestsService) Get(_ context.Context, _, _ string, _ int) (*github.PullRequest, *github.Response, error) {
	return &github.PullRequest{
		Head: &github.PullRequestBranch{SHA: github.Ptr(s.sha)},
	}, nil, nil
}

func (s *fakePullRequestsService) ListFiles(_ context.Context, _, _ string, _ int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	page := max(opts.Page, 1)
	resp := &github.Response{Response: &http.Response{StatusCode: http.StatusOK}}
	if page < len(s.pages) {
		resp.NextPage = page + 1
	}
	return s.pages[page-1], resp, nil
}

func (s *fakePullRequestsService) CreateComment(_ context.Context, _, _ string, _ int, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error) {
	if comment.GetPath() == s.failPath {
		return nil, &github.Response{Response: &http.Response{StatusCode: http.StatusUnprocessableEntity}}, errors.New("position is invalid")
	}
	s.comments = append(s.comments, comment)
	return comment, nil, nil
}

type fakeRepositoriesService struct {
	ref   string
	files map[string]string
	// files larger than 1 MB are returned without their content
	large map[string]bool
}

func (s *fakeRepositoriesService) GetContents(_ context.Context, _, _, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	if opts.Ref != s.ref {
		return nil, nil, nil, errors.New("unknown ref " + opts.Ref)
	}
	if s.large[path] {
		return &github.RepositoryContent{Encoding: github.Ptr("none")}, nil, nil, nil
	}
	content, ok := s.files[path]
	if !ok {
		return nil, nil, nil, errors.New("not found")
	}
	return &github.RepositoryContent{Content: github.Ptr(content)}, nil, nil, nil
}

const appDiff = `diff --git a/app.rb b/app.rb
index 1111111..2222222 100644
--- a/app.rb
+++ b/app.rb
@@ -1,1 +1,3 @@
 x = 1
+some_method( 1 )
+y = [1,2]
diff --git a/README.md b/README.md
index 3333333..4444444 100644
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-foo
+foo( 1 )
diff --git a/old.rb b/old.rb
deleted file mode 100644
index 5555555..0000000
--- a/old.rb
+++ /dev/null
@@ -1 +0,0 @@
-x = 1
`

func TestController_Run_diff(t *testing.T) {
	t.Parallel()
	data := []struct {
		name     string
		diffPath string
		stdin    string
	}{
		{
			name:     "file",
			diffPath: "change.diff",
		},
		{
			name:     "stdin",
			diffPath: "-",
			stdin:    appDiff,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/repo/change.diff", []byte(appDiff), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := afero.WriteFile(fs, "/repo/app.rb", []byte("x = 1\nsome_method( 1 )\ny = [1,2]\nz = [1,2]\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := afero.WriteFile(fs, "/repo/README.md", []byte("foo( 1 )\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			stdout := &bytes.Buffer{}
			ctrl := New(fs, review.New(rule.New()), config.Default(), nil, nil, &ParamCheck{
				DiffPath: d.diffPath,
				PWD:      "/repo",
				Format:   FormatJSON,
				Stdin:    strings.NewReader(d.stdin),
				Stdout:   stdout,
			})
			err := ctrl.Run(context.Background(), log.New("test"))
			if !errors.Is(err, ErrViolationsFound) {
				t.Fatalf("wanted ErrViolationsFound, got %v", err)
			}
			report := &jsonReport{}
			if err := json.Unmarshal(stdout.Bytes(), report); err != nil {
				t.Fatal(err)
			}
			exp := []*review.FileViolation{
				{
					Filename: "app.rb",
					LineViolations: []*review.LineViolation{
						{
							Line: 2, DiffPosition: 2,
							Messages: []string{"Space inside parentheses detected."},
							RuleIDs:  []string{config.RuleSpaceInsideParens},
						},
						{
							Line: 3, DiffPosition: 3,
							Messages: []string{"Space missing after comma."},
							RuleIDs:  []string{config.RuleSpaceAfterComma},
						},
					},
				},
			}
			if diff := cmp.Diff(exp, report.Violations); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestController_Run_pullRequest(t *testing.T) {
	t.Parallel()
	prService := &fakePullRequestsService{
		sha: "abc",
		pages: [][]*github.CommitFile{
			{
				{
					Filename: github.Ptr("app.rb"),
					Status:   github.Ptr("added"),
					Patch:    github.Ptr("@@ -0,0 +1,3 @@\n+x = [1,2]\n+y = 1\n+foo(1,2)"),
				},
				{
					Filename: github.Ptr("README.md"),
					Status:   github.Ptr("modified"),
					Patch:    github.Ptr("@@ -1 +1 @@\n-a\n+b( 1 )"),
				},
			},
			{
				{
					Filename: github.Ptr("old.rb"),
					Status:   github.Ptr("removed"),
					Patch:    github.Ptr("@@ -1 +0,0 @@\n-x = 1"),
				},
				{
					Filename: github.Ptr("lib/ok.rb"),
					Status:   github.Ptr("modified"),
					Patch:    github.Ptr("@@ -1,2 +1,2 @@\n a = 1\n-b = 2\n+b = 3"),
				},
			},
		},
	}
	repoService := &fakeRepositoriesService{
		ref: "abc",
		files: map[string]string{
			"app.rb":    "x = [1,2]\ny = 1\nfoo(1,2)\n",
			"lib/ok.rb": "a = 1\nb = 3\n",
		},
	}
	stdout := &bytes.Buffer{}
	ctrl := New(afero.NewMemMapFs(), review.New(rule.New()), config.Default(), prService, repoService, &ParamCheck{
		PullRequest: &PullRequest{RepoOwner: "linthound", RepoName: "example", Number: 1},
		Review:      true,
		Stdout:      stdout,
	})
	err := ctrl.Run(context.Background(), log.New("test"))
	if !errors.Is(err, ErrViolationsFound) {
		t.Fatalf("wanted ErrViolationsFound, got %v", err)
	}
	exp := []*github.PullRequestComment{
		{
			Body:     github.Ptr("Space missing after comma."),
			Path:     github.Ptr("app.rb"),
			Position: github.Ptr(1),
			CommitID: github.Ptr("abc"),
		},
		{
			Body:     github.Ptr("Space missing after comma."),
			Path:     github.Ptr("app.rb"),
			Position: github.Ptr(3),
			CommitID: github.Ptr("abc"),
		},
	}
	if diff := cmp.Diff(exp, prService.comments); diff != "" {
		t.Fatal(diff)
	}
	if !strings.Contains(stdout.String(), "app.rb:3 (diff position 3)") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestController_Run_pullRequestUnreadableFiles(t *testing.T) {
	t.Parallel()
	prService := &fakePullRequestsService{
		sha: "abc",
		pages: [][]*github.CommitFile{
			{
				{
					Filename: github.Ptr("big.rb"),
					Status:   github.Ptr("modified"),
					Patch:    github.Ptr("@@ -1 +1 @@\n-x = 1\n+x = 2"),
				},
				{
					Filename: github.Ptr("gone.rb"),
					Status:   github.Ptr("added"),
					Patch:    github.Ptr("@@ -0,0 +1 @@\n+x = 1"),
				},
				{
					Filename: github.Ptr("app.rb"),
					Status:   github.Ptr("added"),
					Patch:    github.Ptr("@@ -0,0 +1 @@\n+foo(1,2)"),
				},
			},
		},
	}
	repoService := &fakeRepositoriesService{
		ref: "abc",
		files: map[string]string{
			"app.rb": "foo(1,2)\n",
		},
		large: map[string]bool{
			"big.rb": true,
		},
	}
	stdout := &bytes.Buffer{}
	ctrl := New(afero.NewMemMapFs(), review.New(rule.New()), config.Default(), prService, repoService, &ParamCheck{
		PullRequest: &PullRequest{RepoOwner: "linthound", RepoName: "example", Number: 1},
		Format:      FormatJSON,
		Stdout:      stdout,
	})
	err := ctrl.Run(context.Background(), log.New("test"))
	if !errors.Is(err, ErrViolationsFound) {
		t.Fatalf("wanted ErrViolationsFound, got %v", err)
	}
	report := &jsonReport{}
	if err := json.Unmarshal(stdout.Bytes(), report); err != nil {
		t.Fatal(err)
	}
	if len(report.Violations) != 1 || report.Violations[0].Filename != "app.rb" {
		t.Fatalf("app.rb should be checked:\n%s", stdout.String())
	}
	failed := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		failed = append(failed, f.Filename)
	}
	if diff := cmp.Diff([]string{"big.rb", "gone.rb"}, failed); diff != "" {
		t.Fatal(diff)
	}
}

func TestController_Run_noViolation(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	diff := "--- a/app.rb\n+++ b/app.rb\n@@ -1 +1,2 @@\n x = [1,2]\n+y = 1\n"
	if err := afero.WriteFile(fs, "/repo/app.rb", []byte("x = [1,2]\ny = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout := &bytes.Buffer{}
	ctrl := New(fs, review.New(rule.New()), config.Default(), nil, nil, &ParamCheck{
		DiffPath: "-",
		PWD:      "/repo",
		Stdin:    strings.NewReader(diff),
		Stdout:   stdout,
	})
	if err := ctrl.Run(context.Background(), log.New("test")); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should be output:\n%s", stdout.String())
	}
}

func TestController_Run_noSource(t *testing.T) {
	t.Parallel()
	ctrl := New(afero.NewMemMapFs(), review.New(rule.New()), config.Default(), nil, nil, &ParamCheck{
		Stdout: &bytes.Buffer{},
	})
	if err := ctrl.Run(context.Background(), log.New("test")); !errors.Is(err, errNoSource) {
		t.Fatalf("wanted errNoSource, got %v", err)
	}
}

func TestController_postComments(t *testing.T) {
	t.Parallel()
	prService := &fakePullRequestsService{failPath: "broken.rb"}
	ctrl := New(afero.NewMemMapFs(), nil, config.Default(), prService, nil, &ParamCheck{
		PullRequest: &PullRequest{RepoOwner: "linthound", RepoName: "example", Number: 1, SHA: "abc"},
		Stdout:      &bytes.Buffer{},
	})
	posted := ctrl.postComments(context.Background(), log.New("test"), []*review.FileViolation{
		{
			Filename: "broken.rb",
			LineViolations: []*review.LineViolation{
				{Line: 1, DiffPosition: 1, Messages: []string{"foo"}},
			},
		},
		{
			Filename: "app.rb",
			LineViolations: []*review.LineViolation{
				{Line: 1, DiffPosition: 4, Messages: []string{"foo", "bar"}},
			},
		},
	})
	if posted != 1 {
		t.Fatalf("wanted 1 comment, got %d", posted)
	}
	if body := prService.comments[0].GetBody(); body != "foo\nbar" {
		t.Fatalf("wanted messages joined by a newline, got %q", body)
	}
}
