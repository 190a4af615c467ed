package subcommands

import (
	"context"
	"errors"
	"flag"

	"github.com/adb-explorer/adbexplorer/builder"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"
)

type BuildCMD struct {
	configPath string
	workDir    string
	noPause    bool
	noLaunch   bool
	strict     bool
}

func (*BuildCMD) Name() string     { return "build" }
func (*BuildCMD) Synopsis() string { return locale.Loc("build_synopsis", nil) }

func (c *BuildCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "build config file (.yaml, .yml or .toml)")
	f.StringVar(&c.workDir, "workdir", "", "project directory, overrides the config")
	f.BoolVar(&c.noPause, "no-pause", false, "do not wait for a key press after a failure")
	f.BoolVar(&c.noLaunch, "no-launch", false, "do not start the executable after a successful build")
	f.BoolVar(&c.strict, "strict", false, "stop when creating the venv or installing dependencies fails")
}

func (c *BuildCMD) config() (*builder.Config, error) {
	cfg, err := builder.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.workDir != "" {
		cfg.WorkDir = c.workDir
	}
	if c.noPause {
		cfg.Pause = false
	}
	if c.noLaunch {
		cfg.Launch = false
	}
	if c.strict {
		cfg.Strict = true
	}
	return cfg, nil
}

func (c *BuildCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() > 0 {
		return utils.ErrUsage
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	logHost(ctx)

	tag := builder.DescribeVersion(ctx, utils.ExecRunner{}, cfg.WorkDir)
	logrus.Info(locale.Loc("build_version", locale.Strmap{"Version": tag}))

	outputs, closeOutputs := builder.OpenGitHubOutputs()
	defer closeOutputs()

	b, err := builder.New(cfg,
		builder.WithBuildTag(tag),
		builder.WithOutputs(outputs),
		builder.WithConsole(stdout),
	)
	if err != nil {
		return err
	}
	res, err := b.Run(ctx)
	logrus.WithFields(logrus.Fields{
		"run":      res.RunID,
		"phase":    res.Phase,
		"code":     res.ExitCode,
		"duration": res.Duration,
	}).Debug("build finished")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &utils.ExitError{Code: res.ExitCode}
	}
	return nil
}

func logHost(ctx context.Context) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logrus.Debugf("host info: %s", err)
		return
	}
	logrus.Info(locale.Loc("build_host", locale.Strmap{
		"Platform": info.Platform,
		"Version":  info.PlatformVersion,
		"Arch":     info.KernelArch,
	}))
}

func init() {
	utils.RegisterCommand(&BuildCMD{}, "")
}
