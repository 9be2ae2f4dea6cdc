package cli

import (
	"os"
	"testing"

	"github.com/mchmarny/ssctl/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.SetDefaultCLILogger("debug")

	code := m.Run()
	os.Exit(code)
}

func TestNewApp(t *testing.T) {
	app := newApp()

	if app.Name != "ssctl" {
		t.Errorf("unexpected app name: %s", app.Name)
	}

	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"score", "trips"} {
		if !names[want] {
			t.Errorf("missing command: %s", want)
		}
	}
}
