// Package list implements the 'linthound list' command.
package list

import (
	"context"
	"fmt"
	"os"

	"github.com/linthound/linthound/pkg/cli/flag"
	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/controller/list"
	"github.com/linthound/linthound/pkg/log"
	"github.com/linthound/linthound/pkg/rule"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE:   logE,
		gFlags: gFlags,
	}
	return r.Command()
}

type runner struct {
	logE   *logrus.Entry
	gFlags *flag.GlobalFlags
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List rules",
		Description: `List rules and whether the configuration file enables them.

$ linthound list

You can change the output format with a Go text/template.
The template is rendered per rule with the fields ID, Description and Enabled.

$ linthound list --format '{{.ID}} {{.Enabled}}'
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "enabled",
				Usage: "List only enabled rules",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "line template",
			},
		},
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(r.gFlags.LogLevel, r.logE)
	fs := afero.NewOsFs()
	configPath, err := config.NewFinder(fs).Find(r.gFlags.Config)
	if err != nil {
		return fmt.Errorf("find configuration file: %w", err)
	}
	cfg := config.Default()
	if err := config.NewReader(fs).Read(cfg, configPath); err != nil {
		return fmt.Errorf("read configuration file: %w", err)
	}
	defaultRules := rule.DefaultRules()
	rules := make([]list.Rule, len(defaultRules))
	for i, rl := range defaultRules {
		rules[i] = rl
	}
	ctrl := list.New(cfg, rules, &list.Param{
		LineTemplate: c.String("format"),
		EnabledOnly:  c.Bool("enabled"),
	}, os.Stdout)
	return ctrl.List() //nolint:wrapcheck
}
