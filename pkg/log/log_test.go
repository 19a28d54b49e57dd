package log_test

import (
	"testing"

	"github.com/linthound/linthound/pkg/log"
	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) { //nolint:paralleltest
	orig := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(orig)
	})
	logE := log.New("v1.0.0")
	data := []struct {
		name  string
		level string
		exp   logrus.Level
	}{
		{name: "debug", level: "debug", exp: logrus.DebugLevel},
		{name: "empty keeps the current level", level: "", exp: logrus.DebugLevel},
		{name: "invalid keeps the current level", level: "loud", exp: logrus.DebugLevel},
		{name: "warn", level: "warn", exp: logrus.WarnLevel},
	}
	for _, d := range data {
		log.SetLevel(d.level, logE)
		if got := logrus.GetLevel(); got != d.exp {
			t.Fatalf("%s: wanted %v, got %v", d.name, d.exp, got)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	logE := log.New("v1.0.0")
	if logE.Data["program"] != "linthound" {
		t.Fatalf("program: wanted linthound, got %v", logE.Data["program"])
	}
	if logE.Data["version"] != "v1.0.0" {
		t.Fatalf("version: wanted v1.0.0, got %v", logE.Data["version"])
	}
}
