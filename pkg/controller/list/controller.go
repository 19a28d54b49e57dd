// Package list implements the 'linthound list' command.
// It prints the rules linthound runs and whether the style guide enables them.
package list

import (
	"io"

	"github.com/linthound/linthound/pkg/config"
)

// Rule is a rule of the engine.
type Rule interface {
	ID() string
	Description() string
}

type Controller struct {
	cfg    *config.StyleGuide
	rules  []Rule
	param  *Param
	stdout io.Writer
}

type Param struct {
	// LineTemplate is a text/template rendered per rule with RuleInfo.
	LineTemplate string
	// EnabledOnly omits disabled rules.
	EnabledOnly bool
}

func New(cfg *config.StyleGuide, rules []Rule, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		cfg:    cfg,
		rules:  rules,
		param:  param,
		stdout: stdout,
	}
}
