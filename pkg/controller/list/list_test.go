package list_test

import (
	"bytes"
	"testing"

	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/controller/list"
	"github.com/linthound/linthound/pkg/rule"
)

func rules() []list.Rule {
	return []list.Rule{&rule.LineLength{}, &rule.SpaceAfterComma{}}
}

func TestController_List(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Rules.SpaceAfterComma.Enabled = false
	data := []struct {
		name  string
		param *list.Param
		exp   string
	}{
		{
			name:  "default",
			param: &list.Param{},
			exp: "line_length\tenabled\tLimits the number of characters in a line.\n" +
				"space_after_comma\tdisabled\t" + (&rule.SpaceAfterComma{}).Description() + "\n",
		},
		{
			name:  "enabled only",
			param: &list.Param{EnabledOnly: true},
			exp:   "line_length\tenabled\tLimits the number of characters in a line.\n",
		},
		{
			name:  "template",
			param: &list.Param{LineTemplate: "{{.ID}}={{.Enabled}}"},
			exp:   "line_length=true\nspace_after_comma=false\n",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			if err := list.New(cfg, rules(), d.param, buf).List(); err != nil {
				t.Fatal(err)
			}
			if buf.String() != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, buf.String())
			}
		})
	}
}

func TestController_List_invalidTemplate(t *testing.T) {
	t.Parallel()
	ctrl := list.New(config.Default(), rules(), &list.Param{LineTemplate: "{{.ID"}, &bytes.Buffer{})
	if err := ctrl.List(); err == nil {
		t.Fatal("error must be returned")
	}
}
