package subcommands

import (
	"context"
	"errors"
	"flag"
	"path"
	"time"

	"github.com/adb-explorer/adbexplorer/adb"
	"github.com/adb-explorer/adbexplorer/explorer"
	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
)

// deviceFlags are shared by every command that talks to a device.
type deviceFlags struct {
	Serial  string
	Binary  string
	Timeout time.Duration
}

func (d *deviceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.Serial, "s", "", "device serial")
	f.StringVar(&d.Binary, "adb", "adb", "adb binary")
	f.DurationVar(&d.Timeout, "timeout", adb.DefaultTimeout, "timeout per adb command")
}

func (d *deviceFlags) newClient() *adb.Client {
	c := adb.NewClient(nil, d.Serial)
	c.Binary = d.Binary
	c.Timeout = d.Timeout
	return c
}

// Client connects to the device named by -s, or the only attached one, or
// asks which one to use.
func (d *deviceFlags) Client(ctx context.Context) (*adb.Client, error) {
	c := d.newClient()
	if c.Serial != "" {
		if !c.Connected(ctx) {
			return nil, noDevice()
		}
		return c, nil
	}

	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	var chooser explorer.Chooser
	if utils.IsInteractive() {
		chooser = utils.ChooseOne
	}
	dev, err := explorer.ChooseDevice(ctx, devices, locale.Loc("choose_device", nil), chooser)
	if errors.Is(err, adb.ErrNoDevice) {
		return nil, noDevice()
	}
	if err != nil {
		return nil, err
	}
	c.Serial = dev.Serial
	return c, nil
}

func noDevice() error {
	logrus.Error(locale.Loc("no_device", nil))
	return &utils.ExitError{Code: 1}
}

func remoteItems(paths []string) []adb.FileItem {
	items := make([]adb.FileItem, len(paths))
	for i, p := range paths {
		items[i] = adb.FileItem{Name: path.Base(p), Path: p}
	}
	return items
}

// finish reports every failed item of r.
func finish(r *explorer.Report, err error) error {
	if r != nil {
		for _, f := range r.Failed {
			logrus.Error(locale.Loc("item_failed", locale.Strmap{"Path": f.Path, "Error": f.Err}))
		}
		logrus.Info(locale.Loc("items_done", locale.Strmap{"Count": r.Done, "Total": r.Total}))
	}
	if err != nil {
		return err
	}
	if r != nil && r.Err() != nil {
		logrus.Debug(r.Err())
		return &utils.ExitError{Code: 1}
	}
	return nil
}

type DevicesCMD struct {
	dev deviceFlags
}

func (*DevicesCMD) Name() string               { return "devices" }
func (*DevicesCMD) Synopsis() string           { return locale.Loc("devices_synopsis", nil) }
func (c *DevicesCMD) SetFlags(f *flag.FlagSet) { c.dev.SetFlags(f) }

func (c *DevicesCMD) Execute(ctx context.Context, f *flag.FlagSet) error {
	devices, err := c.dev.newClient().Devices(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return noDevice()
	}
	for _, d := range devices {
		printLine(locale.Loc("device_line", locale.Strmap{"Serial": d.Serial, "Model": d.Model}))
	}
	return nil
}

func init() {
	utils.RegisterCommand(&DevicesCMD{}, "device")
}
