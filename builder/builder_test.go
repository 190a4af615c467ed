package builder_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/adb-explorer/adbexplorer/builder"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeRunner stands in for the interpreter, pip and the packaging tool.
type fakeRunner struct {
	mu   sync.Mutex
	cmds []utils.Cmd

	provisionCode int
	installCode   int
	packageCode   int
	// writeArtifact makes the packaging stub leave an executable behind.
	writeArtifact bool
}

func (f *fakeRunner) Run(ctx context.Context, cmd utils.Cmd) (utils.Result, error) {
	f.mu.Lock()
	f.cmds = append(f.cmds, cmd)
	f.mu.Unlock()

	switch {
	case len(cmd.Args) > 1 && cmd.Args[1] == "venv":
		os.MkdirAll(filepath.Join(cmd.Dir, "venv", "bin"), 0755)
		return utils.Result{ExitCode: f.provisionCode}, nil
	case len(cmd.Args) > 1 && cmd.Args[1] == "pip":
		return utils.Result{ExitCode: f.installCode}, nil
	case len(cmd.Args) > 1 && cmd.Args[1] == "PyInstaller":
		os.MkdirAll(filepath.Join(cmd.Dir, "build", "ADBExplorer"), 0755)
		os.MkdirAll(filepath.Join(cmd.Dir, "__pycache__"), 0755)
		os.WriteFile(filepath.Join(cmd.Dir, "ADBExplorer.spec"), []byte("# spec"), 0644)
		if f.writeArtifact {
			os.MkdirAll(filepath.Join(cmd.Dir, "dist"), 0755)
			os.WriteFile(filepath.Join(cmd.Dir, "dist", "ADBExplorer"), []byte("placeholder"), 0755)
		}
		return utils.Result{ExitCode: f.packageCode}, nil
	}
	return utils.Result{}, nil
}

func (f *fakeRunner) packaged() bool {
	for _, c := range f.cmds {
		if len(c.Args) > 1 && c.Args[1] == "PyInstaller" {
			return true
		}
	}
	return false
}

type fakeLauncher struct {
	paths []string
}

func (l *fakeLauncher) Launch(ctx context.Context, path, dir string) (int, error) {
	l.paths = append(l.paths, path)
	return 4242, nil
}

type countPauser struct{ n int }

func (p *countPauser) Pause() { p.n++ }

type harness struct {
	dir      string
	runner   *fakeRunner
	launcher *fakeLauncher
	pauser   *countPauser
	hook     *test.Hook
	console  *bytes.Buffer
	cfg      *builder.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := builder.DefaultConfig()
	cfg.WorkDir = dir
	cfg.Python = "python3"
	return &harness{
		dir:      dir,
		runner:   &fakeRunner{writeArtifact: true},
		launcher: &fakeLauncher{},
		pauser:   &countPauser{},
		console:  &bytes.Buffer{},
		cfg:      cfg,
	}
}

func (h *harness) run(t *testing.T, opts ...builder.Option) (*builder.Result, error) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h.hook = hook
	opts = append([]builder.Option{
		builder.WithGOOS("linux"),
		builder.WithRunner(h.runner),
		builder.WithLauncher(h.launcher),
		builder.WithPauser(h.pauser),
		builder.WithConsole(h.console),
		builder.WithLogger(logger),
	}, opts...)
	b, err := builder.New(h.cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b.Run(context.Background())
}

func (h *harness) logged(msg string) bool {
	for _, e := range h.hook.AllEntries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRunSuccessLaunchesArtifact(t *testing.T) {
	h := newHarness(t)
	res, err := h.run(t)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	want := filepath.Join(h.dir, "dist", "ADBExplorer")
	if res.Artifact != want {
		t.Errorf("artifact = %q, want %q", res.Artifact, want)
	}
	if len(h.launcher.paths) != 1 || h.launcher.paths[0] != want {
		t.Errorf("launched %v, want [%s]", h.launcher.paths, want)
	}
	if res.PID != 4242 {
		t.Errorf("pid = %d", res.PID)
	}
	if res.Sha256 == "" {
		t.Error("artifact was not hashed")
	}
	if h.pauser.n != 0 {
		t.Errorf("paused %d times on success", h.pauser.n)
	}
	if exists(filepath.Join(h.dir, "venv")) || exists(filepath.Join(h.dir, "__pycache__")) {
		t.Error("venv or __pycache__ survived a successful run")
	}
	if !h.logged(locale.Loc("build_succeeded", locale.Strmap{"Path": want})) {
		t.Error("success was not reported")
	}
}

func TestRunCommandSequence(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t); err != nil {
		t.Fatalf("Run: %v", err)
	}

	venvPython := filepath.Join(h.dir, "venv", "bin", "python")
	want := []string{
		"python3 -m venv venv",
		venvPython + " -m pip install --upgrade pip",
		venvPython + " -m pip install -r requirements.txt",
		venvPython + " -m pip install pyinstaller",
		venvPython + " " + strings.Join(builder.PackagingArgs(h.cfg, "linux"), " "),
	}
	if len(h.runner.cmds) != len(want) {
		t.Fatalf("ran %d commands, want %d", len(h.runner.cmds), len(want))
	}
	for i, c := range h.runner.cmds {
		if c.String() != want[i] {
			t.Errorf("command %d = %q, want %q", i, c.String(), want[i])
		}
		if c.Dir != h.dir {
			t.Errorf("command %d ran in %q", i, c.Dir)
		}
	}
}

func TestRunPackagingFailurePropagatesCode(t *testing.T) {
	h := newHarness(t)
	h.runner.packageCode = 3
	h.runner.writeArtifact = false

	res, err := h.run(t)
	var perr *builder.PackagingError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PackagingError", err)
	}
	if perr.Code != 3 || res.ExitCode != 3 || builder.ExitCode(err) != 3 {
		t.Errorf("codes: err=%d result=%d mapped=%d, want 3", perr.Code, res.ExitCode, builder.ExitCode(err))
	}
	if res.Phase != builder.PhasePackage {
		t.Errorf("stopped in %s, want package", res.Phase)
	}
	if len(h.launcher.paths) != 0 {
		t.Error("verification launched something after a packaging failure")
	}
	if h.pauser.n != 1 {
		t.Errorf("paused %d times, want 1", h.pauser.n)
	}
	if !h.logged(locale.Loc("package_failed", locale.Strmap{"Code": 3})) {
		t.Error("packaging exit code was not reported")
	}
	// the run stopped before post-build cleanup
	if !exists(filepath.Join(h.dir, "venv")) {
		t.Error("venv was removed although cleanup never ran")
	}
}

func TestRunMissingArtifact(t *testing.T) {
	h := newHarness(t)
	h.runner.writeArtifact = false

	res, err := h.run(t)
	if !errors.Is(err, builder.ErrArtifactMissing) {
		t.Fatalf("err = %v, want ErrArtifactMissing", err)
	}
	if res.ExitCode != 1 || builder.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", res.ExitCode)
	}
	if res.Phase != builder.PhaseVerify {
		t.Errorf("stopped in %s, want verify", res.Phase)
	}
	if h.pauser.n != 1 {
		t.Errorf("paused %d times, want 1", h.pauser.n)
	}
	if len(h.launcher.paths) != 0 {
		t.Error("launched a missing artifact")
	}
	artifact := filepath.Join(h.dir, "dist", "ADBExplorer")
	if !h.logged(locale.Loc("artifact_missing", locale.Strmap{"Path": artifact})) {
		t.Error("missing artifact was not reported")
	}
	if exists(filepath.Join(h.dir, "venv")) || exists(filepath.Join(h.dir, "__pycache__")) {
		t.Error("post-build cleanup did not run before verification")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	h := newHarness(t)
	os.MkdirAll(filepath.Join(h.dir, "build", "stale"), 0755)
	os.MkdirAll(filepath.Join(h.dir, "dist"), 0755)
	os.WriteFile(filepath.Join(h.dir, "dist", "old-build"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(h.dir, "ADBExplorer.spec"), []byte("old"), 0644)

	first, err := h.run(t)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if exists(filepath.Join(h.dir, "build", "stale")) || exists(filepath.Join(h.dir, "dist", "old-build")) {
		t.Error("stale artifacts survived the clean phase")
	}

	second, err := h.run(t)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.ExitCode != second.ExitCode || first.Artifact != second.Artifact {
		t.Errorf("runs differ: %+v vs %+v", first, second)
	}
	if first.Sha256 != second.Sha256 {
		t.Error("artifact content differs between runs")
	}
	if first.RunID == second.RunID {
		t.Error("run ids should be unique")
	}
}

func TestRunUncheckedStepsContinue(t *testing.T) {
	h := newHarness(t)
	h.runner.provisionCode = 1
	h.runner.installCode = 2

	res, err := h.run(t)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d", res.ExitCode)
	}
	if !h.runner.packaged() {
		t.Error("packaging was skipped after unchecked failures")
	}
	warnings := 0
	for _, e := range h.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 4 {
		t.Errorf("got %d warnings, want one per failed step (4)", warnings)
	}
}

func TestRunStrictStopsOnInstallFailure(t *testing.T) {
	h := newHarness(t)
	h.cfg.Strict = true
	h.runner.installCode = 1

	res, err := h.run(t)
	var stepErr *builder.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("err = %v, want StepError", err)
	}
	if stepErr.Phase != builder.PhaseInstall || res.Phase != builder.PhaseInstall {
		t.Errorf("failed in %s / %s, want install", stepErr.Phase, res.Phase)
	}
	if res.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", res.ExitCode)
	}
	if h.runner.packaged() {
		t.Error("strict mode still ran the packaging tool")
	}
}

func TestRunWithoutLaunch(t *testing.T) {
	h := newHarness(t)
	h.cfg.Launch = false

	res, err := h.run(t)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.launcher.paths) != 0 || res.PID != 0 {
		t.Error("launch disabled but artifact was started")
	}
}

func TestRunWithoutPause(t *testing.T) {
	h := newHarness(t)
	h.cfg.Pause = false
	h.runner.packageCode = 1

	if _, err := h.run(t); err == nil {
		t.Fatal("expected packaging failure")
	}
	if h.pauser.n != 0 {
		t.Errorf("paused %d times with pausing disabled", h.pauser.n)
	}
}

func TestRunWritesOutputs(t *testing.T) {
	h := newHarness(t)
	var buf bytes.Buffer

	res, err := h.run(t, builder.WithOutputs(builder.NewOutputs(&buf)), builder.WithBuildTag("1.2.3-0"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"artifact=" + res.Artifact + "\n",
		"artifact_sha256=" + res.Sha256 + "\n",
		"build_tag=1.2.3-0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("outputs %q missing %q", out, want)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t)
	b, err := builder.New(h.cfg, builder.WithRunner(h.runner), builder.WithConsole(h.console))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.ExitCode == 0 {
		t.Error("cancelled run reported success")
	}
	if len(h.runner.cmds) != 0 {
		t.Errorf("ran %d commands after cancellation", len(h.runner.cmds))
	}
}

func TestConsoleShowsNumberedPhases(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t); err != nil {
		t.Fatal(err)
	}
	out := h.console.String()
	for _, want := range []string{"[1/6]", "[4/6]", "[6/6]"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %s", want)
		}
	}
}
