package rule_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/rule"
)

func messages(offenses []*rule.Offense) []string {
	if len(offenses) == 0 {
		return nil
	}
	msgs := make([]string, len(offenses))
	for i, o := range offenses {
		msgs[i] = o.Message
	}
	return msgs
}

func TestEngine_Analyze(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name     string
		contents string
		exp      []string
	}{
		{
			name:     "line at the limit",
			contents: "'" + strings.Repeat("a", 78) + "'\n",
		},
		{
			name:     "line over the limit",
			contents: "'" + strings.Repeat("a", 79) + "'\n",
			exp:      []string{"Line is too long. [81/80]"},
		},
		{
			name:     "space inside parentheses",
			contents: "some_method( 1 )\n",
			exp: []string{
				"Space inside parentheses detected.",
				"Space inside parentheses detected.",
			},
		},
		{
			name:     "hash literal braces",
			contents: "{a: 1, b: 2}\n",
			exp: []string{
				"Space inside { missing.",
				"Space inside } missing.",
			},
		},
		{
			name:     "block braces",
			contents: "ary.map{|a| a.something}\n",
			exp: []string{
				"Space missing to the left of {.",
				"Space between { and | missing.",
				"Space missing inside }.",
			},
		},
		{
			name:     "block without parameters",
			contents: "ary.each {puts 1 }\n",
			exp:      []string{"Space missing inside {."},
		},
		{
			name:     "well formed block and hash",
			contents: "ary.map { |a| a.something }\nh = { a: 1, b: 2 }\nh.each {}\n",
		},
		{
			name:     "defs without empty line",
			contents: "def foo\n  1\nend\ndef bar\n  2\nend\n",
			exp:      []string{"Use empty lines between defs."},
		},
		{
			name:     "defs separated by an empty line",
			contents: "def foo\n  1\nend\n\ndef bar\n  2\nend\n",
		},
		{
			name:     "comment between defs",
			contents: "def foo\nend\n# bar does nothing\ndef bar\nend\n",
			exp:      []string{"Use empty lines between defs."},
		},
		{
			name:     "nested end before def",
			contents: "def foo\n  if x\n    1\n  end\nend\n\ndef bar\n  [1].each do |a|\n  end\nend\n",
		},
		{
			name:     "endless def",
			contents: "def foo = 1\ndef bar = 2\n",
		},
		{
			name:     "trailing whitespace",
			contents: "x = 1 \ny = 2\t\n",
			exp: []string{
				"Trailing whitespace detected.",
				"Trailing whitespace detected.",
			},
		},
		{
			name:     "space after comma and semicolon",
			contents: "foo(1,2); bar\nx = 1;y = 2\n",
			exp: []string{
				"Space missing after comma.",
				"Space missing after semicolon.",
			},
		},
		{
			name:     "space inside brackets",
			contents: "a = [ 1, 2 ]\nb = []\n",
			exp: []string{
				"Space inside square brackets detected.",
				"Space inside square brackets detected.",
			},
		},
		{
			name:     "ternary colon",
			contents: "a = x ? 1 : 2\nb = x ? y: z\nc = x ? y :z\nd = x ? :y : :z\n",
			exp: []string{
				"Surrounding space missing for operator ':'.",
				"Surrounding space missing for operator ':'.",
			},
		},
		{
			name:     "comments and strings are not checked",
			contents: "# foo( 1 )\nputs \"{a: 1} ( x )\"\nputs 'a,b'\n",
		},
		{
			name:     "heredoc body is not checked",
			contents: "x = <<~EOS\n  foo( 1 )\nEOS\ny = 1\n",
		},
		{
			name: "empty file",
		},
	}
	engine := rule.New()
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			offenses, err := engine.Analyze(context.Background(), "app.rb", d.contents, config.Default())
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, messages(offenses)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestEngine_Analyze_position(t *testing.T) {
	t.Parallel()
	offenses, err := rule.New().Analyze(context.Background(), "app.rb", "x = 1\nary.map{|a| a.something}\n", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	exp := []*rule.Offense{
		{Line: 2, Column: 8, RuleID: config.RuleSpaceBeforeBlockBraces, Message: "Space missing to the left of {."},
		{Line: 2, Column: 9, RuleID: config.RuleSpaceInsideBlockBraces, Message: "Space between { and | missing."},
		{Line: 2, Column: 24, RuleID: config.RuleSpaceInsideBlockBraces, Message: "Space missing inside }."},
	}
	if diff := cmp.Diff(exp, offenses); diff != "" {
		t.Fatal(diff)
	}
}

func TestEngine_Analyze_config(t *testing.T) {
	t.Parallel()
	contents := "'" + strings.Repeat("a", 99) + "'\nfoo( 1)\n"
	data := []struct {
		name string
		cfg  func(cfg *config.StyleGuide)
		exp  []string
	}{
		{
			name: "default",
			cfg:  func(*config.StyleGuide) {},
			exp: []string{
				"Line is too long. [101/80]",
				"Space inside parentheses detected.",
			},
		},
		{
			name: "custom max",
			cfg: func(cfg *config.StyleGuide) {
				cfg.Rules.LineLength.Max = 120
			},
			exp: []string{"Space inside parentheses detected."},
		},
		{
			name: "disabled rules",
			cfg: func(cfg *config.StyleGuide) {
				cfg.Rules.LineLength.Enabled = false
				cfg.Rules.SpaceInsideParens.Enabled = false
			},
		},
	}
	engine := rule.New()
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			d.cfg(cfg)
			offenses, err := engine.Analyze(context.Background(), "app.rb", contents, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, messages(offenses)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestEngine_Analyze_error(t *testing.T) {
	t.Parallel()
	_, err := rule.New().Analyze(context.Background(), "app.rb", "puts \"foo\n", config.Default())
	if !errors.Is(err, rule.ErrUnterminated) {
		t.Fatalf("wanted ErrUnterminated, got %v", err)
	}
}

func TestEngine_Analyze_canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rule.New().Analyze(ctx, "app.rb", "x = 1\n", config.Default())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("wanted context.Canceled, got %v", err)
	}
}
