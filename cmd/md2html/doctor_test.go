package main

// Notes:
// - Tests that swap lookBrowser or hints.IsInContainer do not run in parallel.
// - ROD_BROWSER_BIN is pointed at a shell script that prints a version, so
//   no real browser is needed (skipped on Windows).

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/hints"
)

func stubDoctorProbes(t *testing.T, browser string, found, container bool) {
	t.Helper()
	origLook, origContainer := lookBrowser, hints.IsInContainer
	t.Cleanup(func() {
		lookBrowser = origLook
		hints.IsInContainer = origContainer
	})
	lookBrowser = func() (string, bool) { return browser, found }
	hints.IsInContainer = func() bool { return container }
}

func fakeBrowser(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script browser stub needs a Unix shell")
	}
	path := filepath.Join(t.TempDir(), "chrome")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho 'Chromium 140.0'\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunDoctor
// ---------------------------------------------------------------------------

func TestRunDoctor_BrowserFromEnv(t *testing.T) {
	stubDoctorProbes(t, "", false, false)
	bin := fakeBrowser(t)

	env := newTestEnv(map[string]string{"ROD_BROWSER_BIN": bin}, "")
	r := runDoctor(env.Environment)

	if r.Status == statusErrors {
		t.Errorf("Status = %q (errors %v)", r.Status, r.Errors)
	}
	if !r.Chrome.Found || r.Chrome.Path != bin || !r.Chrome.Sandbox {
		t.Errorf("Chrome = %+v", r.Chrome)
	}
	// A temp dir mounted noexec leaves the version empty with a warning.
	if r.Chrome.Version != "" && r.Chrome.Version != "Chromium 140.0" {
		t.Errorf("Version = %q", r.Chrome.Version)
	}
	if len(r.Styles) == 0 {
		t.Error("Styles should list the built-in styles")
	}
}

func TestRunDoctor_BrowserMissingIsWarning(t *testing.T) {
	stubDoctorProbes(t, "", false, false)

	env := newTestEnv(nil, "")
	code := runDoctorCmd(nil, env.Environment)

	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	out := env.stdout.String()
	for _, want := range []string{"[WARN] Not found", "Status: Ready with warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctor_MissingBrowserBinIsError(t *testing.T) {
	stubDoctorProbes(t, "", false, false)

	env := newTestEnv(map[string]string{"ROD_BROWSER_BIN": filepath.Join(t.TempDir(), "nope")}, "")
	code := runDoctorCmd(nil, env.Environment)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(env.stdout.String(), "Status: Not ready") {
		t.Errorf("output:\n%s", env.stdout)
	}
}

func TestRunDoctor_ContainerWithoutNoSandbox(t *testing.T) {
	stubDoctorProbes(t, "", false, true)

	env := newTestEnv(map[string]string{"CI": "true"}, "")
	r := runDoctor(env.Environment)

	if !r.Env.Container || !r.Env.CI {
		t.Errorf("Env = %+v, want container and CI detected", r.Env)
	}
	found := false
	for _, w := range r.Warnings {
		if strings.Contains(w, "ROD_NO_SANDBOX") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want a ROD_NO_SANDBOX warning", r.Warnings)
	}
}

func TestRunDoctor_JSON(t *testing.T) {
	stubDoctorProbes(t, "", false, false)

	env := newTestEnv(map[string]string{"ROD_NO_SANDBOX": "1"}, "")
	if code := runDoctorCmd([]string{"--json"}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	var r doctorResult
	if err := json.Unmarshal(env.stdout.Bytes(), &r); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, env.stdout)
	}
	if r.Status != statusWarnings || r.Env.NoSandbox != "1" || r.Env.OS != runtime.GOOS {
		t.Errorf("result = %+v", r)
	}
}
