// Package initcmd implements the 'linthound init' command.
package initcmd

import (
	"context"
	"fmt"

	"github.com/linthound/linthound/pkg/cli/flag"
	"github.com/linthound/linthound/pkg/controller/initcmd"
	"github.com/linthound/linthound/pkg/log"
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
		Name:  "init",
		Usage: "Create .linthound.yaml if it doesn't exist",
		Description: `Create .linthound.yaml if it doesn't exist

$ linthound init

You can also pass configuration file path.

e.g.

$ linthound init .github/linthound.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(r.gFlags.LogLevel, r.logE)
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = r.gFlags.Config
	}
	if configFilePath == "" {
		configFilePath = initcmd.DefaultConfigPath
	}
	created, err := initcmd.New(afero.NewOsFs()).Init(configFilePath)
	if err != nil {
		return fmt.Errorf("initialize linthound: %w", err)
	}
	logE := r.logE.WithField("config", configFilePath)
	if created {
		logE.Info("created a configuration file")
		return nil
	}
	logE.Info("the configuration file already exists")
	return nil
}
