package list

import (
	"fmt"
	"text/template"
)

// List writes a line per rule.
func (c *Controller) List() error {
	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}
	for _, r := range c.rules {
		info := &RuleInfo{
			ID:          r.ID(),
			Description: r.Description(),
			Enabled:     c.cfg.Rules.Enabled(r.ID()),
		}
		if c.param.EnabledOnly && !info.Enabled {
			continue
		}
		if err := c.writeLine(tmpl, info); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) writeLine(tmpl *template.Template, info *RuleInfo) error {
	if tmpl == nil {
		state := "disabled"
		if info.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", info.ID, state, info.Description)
		return nil
	}
	if err := tmpl.Execute(c.stdout, info); err != nil {
		return fmt.Errorf("execute line template: %w", err)
	}
	fmt.Fprintln(c.stdout)
	return nil
}
