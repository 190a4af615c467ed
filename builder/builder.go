// Package builder reproduces a clean packaging environment for the desktop
// application, runs the packaging tool and verifies the executable it
// produces.
//
// A run is a fixed sequence of phases:
//
//	clean -> provision -> install -> package -> postclean -> verify
//
// Only the package and verify phases are checked. Provisioning and
// installation failures surface later, at the packaging step, unless the
// configuration asks for strict mode.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Phase int

const (
	PhaseClean Phase = iota + 1
	PhaseProvision
	PhaseInstall
	PhasePackage
	PhasePostClean
	PhaseVerify
)

const phaseCount = int(PhaseVerify)

var phaseNames = [...]string{"", "clean", "provision", "install", "package", "postclean", "verify"}

func (p Phase) String() string {
	if p < PhaseClean || p > PhaseVerify {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Result summarizes a run. Phase is the last phase that was entered.
type Result struct {
	RunID    string
	BuildTag string
	Phase    Phase
	ExitCode int
	Artifact string
	Sha256   string
	PID      int
	Duration time.Duration
}

type Builder struct {
	cfg      *Config
	goos     string
	dir      string
	buildTag string

	runner   utils.Runner
	launcher Launcher
	pauser   Pauser
	outputs  *Outputs
	out      io.Writer
	logger   *logrus.Logger
	log      *logrus.Entry
}

type Option func(*Builder)

func WithRunner(r utils.Runner) Option   { return func(b *Builder) { b.runner = r } }
func WithLauncher(l Launcher) Option     { return func(b *Builder) { b.launcher = l } }
func WithPauser(p Pauser) Option         { return func(b *Builder) { b.pauser = p } }
func WithOutputs(o *Outputs) Option      { return func(b *Builder) { b.outputs = o } }
func WithConsole(w io.Writer) Option     { return func(b *Builder) { b.out = w } }
func WithLogger(l *logrus.Logger) Option { return func(b *Builder) { b.logger = l } }
func WithBuildTag(tag string) Option     { return func(b *Builder) { b.buildTag = tag } }
func WithGOOS(goos string) Option        { return func(b *Builder) { b.goos = goos } }

func New(cfg *Config, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build config: %w", err)
	}
	dir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:      cfg.Clone(),
		goos:     runtime.GOOS,
		dir:      dir,
		runner:   utils.ExecRunner{},
		launcher: DetachedLauncher{},
		pauser:   TermPauser{In: os.Stdin, Out: os.Stdout},
		out:      os.Stdout,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if !b.cfg.Pause {
		b.pauser = noPause{}
	}
	b.log = logrus.NewEntry(b.logger)
	return b, nil
}

func (b *Builder) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(b.dir, rel)
}

func (b *Builder) step(p Phase) {
	banner := color.New(color.FgHiCyan, color.Bold).SprintfFunc()
	fmt.Fprintf(b.out, "%s %s\n", banner("[%d/%d]", int(p), phaseCount), locale.Loc("phase_"+p.String(), nil))
}

// Run executes every phase in order. The returned Result is never nil; its
// ExitCode is what the process should exit with.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), BuildTag: b.buildTag}
	b.log = b.logger.WithField("run", res.RunID[:8])
	defer func() { res.Duration = time.Since(start) }()

	phases := []struct {
		phase Phase
		run   func(context.Context, *Result) error
	}{
		{PhaseClean, b.clean},
		{PhaseProvision, b.provision},
		{PhaseInstall, b.install},
		{PhasePackage, b.pack},
		{PhasePostClean, b.postClean},
		{PhaseVerify, b.verify},
	}

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			res.ExitCode = 1
			return res, err
		}
		res.Phase = p.phase
		b.step(p.phase)
		if err := p.run(ctx, res); err != nil {
			res.ExitCode = ExitCode(err)
			return res, err
		}
	}
	return res, nil
}

func (b *Builder) clean(ctx context.Context, _ *Result) error {
	for _, p := range []string{b.cfg.BuildDir, b.cfg.DistDir, b.cfg.SpecFile()} {
		if p == "" {
			continue
		}
		if err := utils.RemoveTree(b.path(p)); err != nil {
			b.log.WithError(err).Warnf("could not remove %s", p)
		}
	}
	return nil
}

func (b *Builder) provision(ctx context.Context, _ *Result) error {
	return b.check(ctx, PhaseProvision, utils.Cmd{
		Name: b.cfg.Python,
		Args: []string{"-m", "venv", b.cfg.VenvDir},
	})
}

func (b *Builder) install(ctx context.Context, _ *Result) error {
	python := b.path(b.cfg.VenvPython(b.goos))
	for _, args := range installSteps(b.cfg) {
		if err := b.check(ctx, PhaseInstall, utils.Cmd{Name: python, Args: args}); err != nil {
			return err
		}
	}
	return nil
}

// check runs an unchecked step. Failures are logged and swallowed unless
// the config is strict; cancellation always stops the run.
func (b *Builder) check(ctx context.Context, phase Phase, cmd utils.Cmd) error {
	cmd.Dir = b.dir
	cmd.Stdout = b.out
	cmd.Stderr = b.out
	res, err := b.runner.Run(ctx, cmd)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil && res.ExitCode == 0 {
		return nil
	}

	stepErr := &StepError{Phase: phase, Cmd: cmd.String(), Code: res.ExitCode, Err: err}
	if b.cfg.Strict {
		b.log.Error(stepErr)
		b.pauser.Pause()
		return stepErr
	}
	b.log.Warn(locale.Loc("step_unchecked", locale.Strmap{"Error": stepErr.Error()}))
	return nil
}

func (b *Builder) pack(ctx context.Context, _ *Result) error {
	python := b.path(b.cfg.VenvPython(b.goos))
	res, err := b.runner.Run(ctx, utils.Cmd{
		Name:   python,
		Args:   PackagingArgs(b.cfg, b.goos),
		Dir:    b.dir,
		Stdout: b.out,
		Stderr: b.out,
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var perr *PackagingError
	switch {
	case err != nil:
		perr = &PackagingError{Code: 1, Err: err}
	case res.ExitCode != 0:
		perr = &PackagingError{Code: res.ExitCode}
	default:
		return nil
	}
	b.log.Error(locale.Loc("package_failed", locale.Strmap{"Code": perr.Code}))
	if perr.Err != nil {
		b.log.Debug(perr.Err)
	}
	b.pauser.Pause()
	return perr
}

func (b *Builder) postClean(ctx context.Context, _ *Result) error {
	dirs := append([]string{}, b.cfg.CacheDirs...)
	dirs = append(dirs, b.cfg.VenvDir)
	for _, d := range dirs {
		if err := utils.RemoveTree(b.path(d)); err != nil {
			b.log.WithError(err).Debugf("cleanup of %s failed", d)
		}
	}
	return nil
}

func (b *Builder) verify(ctx context.Context, res *Result) error {
	artifact := b.path(b.cfg.ArtifactPath(b.goos))
	info, err := os.Stat(artifact)
	if err != nil || info.IsDir() {
		b.log.Error(locale.Loc("artifact_missing", locale.Strmap{"Path": artifact}))
		b.pauser.Pause()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, err)
		}
		return ErrArtifactMissing
	}
	res.Artifact = artifact

	if sum, err := sha256File(artifact); err != nil {
		b.log.WithError(err).Warn("could not hash artifact")
	} else {
		res.Sha256 = sum
	}
	b.outputs.Write("artifact", artifact)
	b.outputs.Write("artifact_sha256", res.Sha256)
	if b.buildTag != "" {
		b.outputs.Write("build_tag", b.buildTag)
	}

	b.log.WithFields(logrus.Fields{
		"size":   info.Size(),
		"sha256": res.Sha256,
	}).Info(locale.Loc("build_succeeded", locale.Strmap{"Path": artifact}))

	if !b.cfg.Launch {
		return nil
	}
	pid, err := b.launcher.Launch(ctx, artifact, b.dir)
	if err != nil {
		b.log.WithError(err).Warn(locale.Loc("launch_failed", nil))
		return nil
	}
	res.PID = pid
	b.log.Info(locale.Loc("launched", locale.Strmap{"PID": pid}))
	return nil
}
