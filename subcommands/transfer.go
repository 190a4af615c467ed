package subcommands

import (
	"context"
	"flag"

	"github.com/adb-explorer/adbexplorer/explorer"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
)

type PullCMD struct {
	dev deviceFlags
}

func (*PullCMD) Name() string               { return "pull" }
func (*PullCMD) Synopsis() string           { return locale.Loc("pull_synopsis", nil) }
func (c *PullCMD) SetFlags(f *flag.FlagSet) { c.dev.SetFlags(f) }

// pull <remote>... <local dir>
func (c *PullCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() < 2 {
		return utils.ErrUsage
	}
	args := f.Args()
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	n, err := explorer.Download(ctx, client, remoteItems(args[:len(args)-1]), args[len(args)-1])
	if err != nil {
		logrus.Error(locale.Loc("transfer_failed", locale.Strmap{"Count": n}))
		return err
	}
	logrus.Info(locale.Loc("transfer_done", locale.Strmap{"Count": n}))
	return nil
}

type PushCMD struct {
	dev deviceFlags
}

func (*PushCMD) Name() string               { return "push" }
func (*PushCMD) Synopsis() string           { return locale.Loc("push_synopsis", nil) }
func (c *PushCMD) SetFlags(f *flag.FlagSet) { c.dev.SetFlags(f) }

// push <local>... <remote dir>
func (c *PushCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() < 2 {
		return utils.ErrUsage
	}
	args := f.Args()
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	remoteDir := args[len(args)-1]
	total := 0
	for _, local := range args[:len(args)-1] {
		n, err := explorer.Upload(ctx, client, local, remoteDir)
		total += n
		if err != nil {
			logrus.Error(locale.Loc("transfer_failed", locale.Strmap{"Count": total}))
			return err
		}
	}
	logrus.Info(locale.Loc("transfer_done", locale.Strmap{"Count": total}))
	return nil
}

// pasteCMD copies or moves items into a directory on the device.
type pasteCMD struct {
	op      explorer.Op
	dev     deviceFlags
	viaHost bool
}

func (c *pasteCMD) Name() string {
	if c.op == explorer.OpMove {
		return "mv"
	}
	return "cp"
}

func (c *pasteCMD) Synopsis() string {
	return locale.Loc(c.Name()+"_synopsis", nil)
}

func (c *pasteCMD) SetFlags(f *flag.FlagSet) {
	c.dev.SetFlags(f)
	if c.op == explorer.OpCopy {
		f.BoolVar(&c.viaHost, "host", false, "copy files through the host instead of on the device")
	}
}

// <cp|mv> <remote>... <remote dir>
func (c *pasteCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	if f.NArg() < 2 {
		return utils.ErrUsage
	}
	args := f.Args()
	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	items, dest := remoteItems(args[:len(args)-1]), args[len(args)-1]
	if c.viaHost {
		for i := range items {
			items[i].IsDir = isRemoteDir(ctx, client, items[i].Path)
		}
		return finish(explorer.CopyToPath(ctx, client, items, dest))
	}
	return finish(explorer.Paste(ctx, client, items, dest, c.op))
}

func isRemoteDir(ctx context.Context, dev explorer.Device, p string) bool {
	_, err := dev.List(ctx, p+"/.")
	return err == nil
}

func init() {
	utils.RegisterCommand(&PullCMD{}, "device")
	utils.RegisterCommand(&PushCMD{}, "device")
	utils.RegisterCommand(&pasteCMD{op: explorer.OpCopy}, "device")
	utils.RegisterCommand(&pasteCMD{op: explorer.OpMove}, "device")
}
