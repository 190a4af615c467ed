package subcommands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/adb-explorer/adbexplorer/adb"
	"github.com/adb-explorer/adbexplorer/explorer"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/fatih/color"
)

var stdout io.Writer = color.Output

// defaultDir is the primary shared storage; /sdcard only links to it.
const defaultDir = "/storage/emulated/0"

func printLine(s string) { fmt.Fprintln(stdout, s) }

type LsCMD struct {
	dev    deviceFlags
	filter string
}

func (*LsCMD) Name() string     { return "ls" }
func (*LsCMD) Synopsis() string { return locale.Loc("ls_synopsis", nil) }

func (c *LsCMD) SetFlags(f *flag.FlagSet) {
	c.dev.SetFlags(f)
	f.StringVar(&c.filter, "filter", "", "only show names containing this text")
}

func (c *LsCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	dir := defaultDir
	if f.NArg() > 1 {
		return utils.ErrUsage
	}
	if f.NArg() == 1 {
		dir = f.Arg(0)
	}

	client, err := c.dev.Client(ctx)
	if err != nil {
		return err
	}
	items, err := client.List(ctx, dir)
	if err != nil {
		return err
	}
	items = explorer.Filter(items, c.filter)
	explorer.Sort(items)
	writeListing(stdout, items)
	return nil
}

func writeListing(w io.Writer, items []adb.FileItem) {
	dirName := color.New(color.FgBlue, color.Bold).SprintFunc()
	linkName := color.New(color.FgCyan).SprintFunc()
	for _, it := range items {
		name := it.Name
		switch {
		case it.IsDir:
			name = dirName(name + "/")
		case it.IsLink():
			name = linkName(name)
			if it.LinkTarget != "" {
				name += " -> " + it.LinkTarget
			}
		}
		fmt.Fprintf(w, "%-10s %10s  %s  %s\n", it.Permissions, explorer.FormatSize(it.Size), it.Modified, name)
	}
}

func init() {
	utils.RegisterCommand(&LsCMD{}, "device")
}
