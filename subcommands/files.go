package subcommands

import (
	"context"
	"errors"
	"flag"
	"runtime"

	"github.com/adb-explorer/adbexplorer/explorer"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
)

type RmCMD struct {
	dev       deviceFlags
	recursive bool
	force     bool
}

func (*RmCMD) Name() string     { return "rm" }
func (*RmCMD) Synopsis() string { return locale.Loc("rm_synopsis", nil) }

func (c *RmCMD) SetFlags(f *flag.FlagSet) {
	c.dev.SetFlags(f)
	f.BoolVar(&c.recursive, "r", false, "delete folders and their contents")
	f.BoolVar(&c.force, "f", false, "do not ask for confirmation")
}

func (c *RmCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() == 0 {
		return utils.ErrUsage
	}
	if !c.force && !utils.IsInteractive() {
		logrus.Error(locale.Loc("delete_needs_force", nil))
		return &utils.ExitError{Code: 1}
	}
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}

	r := &explorer.Report{Total: f.NArg()}
	for _, p := range f.Args() {
		if !c.force {
			ok, err := utils.Confirm(ctx, locale.Loc("confirm_delete", locale.Strmap{"Path": p}), false)
			if err != nil {
				return err
			}
			if !ok {
				logrus.Info(locale.Loc("delete_skipped", nil))
				continue
			}
		}
		if err := client.Delete(ctx, p, c.recursive); err != nil {
			r.Failed = append(r.Failed, &explorer.ItemError{Path: p, Err: err})
			continue
		}
		r.Done++
	}
	return finish(r, nil)
}

// createCMD runs one create operation per argument.
type createCMD struct {
	name   string
	dev    deviceFlags
	create func(ctx context.Context, dev createDevice, p string) error
}

type createDevice interface {
	CreateFile(ctx context.Context, p string) error
	CreateFolder(ctx context.Context, p string) error
}

func (c *createCMD) Name() string             { return c.name }
func (c *createCMD) Synopsis() string         { return locale.Loc(c.name+"_synopsis", nil) }
func (c *createCMD) SetFlags(f *flag.FlagSet) { c.dev.SetFlags(f) }

func (c *createCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() == 0 {
		return utils.ErrUsage
	}
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	r := &explorer.Report{Total: f.NArg()}
	for _, p := range f.Args() {
		if err := c.create(ctx, client, p); err != nil {
			r.Failed = append(r.Failed, &explorer.ItemError{Path: p, Err: err})
			continue
		}
		r.Done++
	}
	return finish(r, nil)
}

type RenameCMD struct {
	dev  deviceFlags
	base string
}

func (*RenameCMD) Name() string     { return "rename" }
func (*RenameCMD) Synopsis() string { return locale.Loc("rename_synopsis", nil) }

func (c *RenameCMD) SetFlags(f *flag.FlagSet) {
	c.dev.SetFlags(f)
	f.StringVar(&c.base, "base", "", "batch rename to <base>01, <base>02, ...")
}

// rename <old> <new>
// rename -base <name> <path> <path>...
func (c *RenameCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if c.base == "" && f.NArg() != 2 {
		return utils.ErrUsage
	}
	if c.base != "" && f.NArg() < 2 {
		return explorer.ErrTooFewItems
	}
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	if c.base == "" {
		return client.Rename(ctx, f.Arg(0), f.Arg(1))
	}
	return finish(explorer.BatchRename(ctx, client, f.Args(), c.base))
}

func init() {
	utils.RegisterCommand(&RmCMD{}, "device")
	utils.RegisterCommand(&createCMD{
		name: "mkdir",
		create: func(ctx context.Context, dev createDevice, p string) error {
			return dev.CreateFolder(ctx, p)
		},
	}, "device")
	utils.RegisterCommand(&createCMD{
		name: "touch",
		create: func(ctx context.Context, dev createDevice, p string) error {
			return dev.CreateFile(ctx, p)
		},
	}, "device")
	utils.RegisterCommand(&RenameCMD{}, "device")
}

type OpenCMD struct {
	dev deviceFlags
}

func (*OpenCMD) Name() string               { return "open" }
func (*OpenCMD) Synopsis() string           { return locale.Loc("open_synopsis", nil) }
func (c *OpenCMD) SetFlags(f *flag.FlagSet) { c.dev.SetFlags(f) }

// open <remote file>
func (c *OpenCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() != 1 {
		return utils.ErrUsage
	}
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	remote := f.Arg(0)
	if isRemoteDir(ctx, client, remote) {
		return errors.New(locale.Loc("is_directory", locale.Strmap{"Path": remote}))
	}
	local, err := explorer.Open(ctx, client, utils.ExecRunner{}, runtime.GOOS, remote)
	if err != nil {
		return err
	}
	logrus.Info(locale.Loc("opened", locale.Strmap{"Path": local}))
	return nil
}

func init() {
	utils.RegisterCommand(&OpenCMD{}, "device")
}
