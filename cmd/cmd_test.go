package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glidetop/glidetop/cmd/common"
	"github.com/glidetop/glidetop/internal/tui"
)

// writeTestConfig drops a minimal config file into a temp dir and returns
// its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glidetop.yaml")
	body := "refresh:\n  focused_interval: 30s\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// stubDashboard replaces the dashboard runner for the duration of a test
// and reports whether it ran.
func stubDashboard(t *testing.T) *bool {
	t.Helper()
	ran := false
	orig := runDashboard
	runDashboard = func(tui.Model) error {
		ran = true
		return nil
	}
	t.Cleanup(func() {
		runDashboard = orig
		resetFlags()
	})
	return &ran
}

func TestExecuteVersion(t *testing.T) {
	err := Execute([]string{"glidetop", "version"}, BuildArgs{
		Version:   "1.0.0",
		BuildType: "test",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(common.VersionCmdStr, "glidetop 1.0.0-test") {
		t.Fatalf("unexpected version string: %q", common.VersionCmdStr)
	}
}

func TestExecuteMonitorRunsDashboard(t *testing.T) {
	ran := stubDashboard(t)
	cfgFile := writeTestConfig(t)

	err := Execute([]string{"glidetop", "monitor", "--config", cfgFile}, BuildArgs{Version: "test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !*ran {
		t.Fatalf("expected the dashboard to run")
	}
}

func TestExecuteDefaultActionIsMonitor(t *testing.T) {
	ran := stubDashboard(t)
	cfgFile := writeTestConfig(t)

	err := Execute([]string{"glidetop", "--config", cfgFile}, BuildArgs{Version: "test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !*ran {
		t.Fatalf("expected bare glidetop to start the dashboard")
	}
}

func TestExecuteMonitorMissingConfig(t *testing.T) {
	ran := stubDashboard(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	// Config errors are reported to the user, not bubbled as exit codes.
	err := Execute([]string{"glidetop", "monitor", "--config", missing}, BuildArgs{Version: "test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if *ran {
		t.Fatalf("dashboard must not run when the config cannot be loaded")
	}
}

func TestExecuteMonitorIntervalFlag(t *testing.T) {
	ran := stubDashboard(t)
	cfgFile := writeTestConfig(t)

	err := Execute([]string{"glidetop", "monitor", "--config", cfgFile, "--interval", "60"}, BuildArgs{Version: "test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !*ran {
		t.Fatalf("expected the dashboard to run")
	}
	if intervalSecs != 60 {
		t.Fatalf("expected interval flag to parse, got %d", intervalSecs)
	}
}
