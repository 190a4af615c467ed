// Package adb drives the Android Debug Bridge binary to inspect and modify
// files on a connected device.
package adb

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

var log = logrus.WithField("part", "ADB")

type Client struct {
	// Serial selects the device when more than one is attached.
	Serial  string
	Binary  string
	Timeout time.Duration

	runner utils.Runner
}

// NewClient returns a client for serial. A nil runner runs the real binary.
func NewClient(runner utils.Runner, serial string) *Client {
	if runner == nil {
		runner = utils.ExecRunner{}
	}
	return &Client{
		Serial:  serial,
		Binary:  "adb",
		Timeout: DefaultTimeout,
		runner:  runner,
	}
}

func (c *Client) run(ctx context.Context, args ...string) (utils.Result, error) {
	if c.Serial != "" {
		args = append([]string{"-s", c.Serial}, args...)
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.runner.Run(cctx, utils.Cmd{Name: c.Binary, Args: args, Hidden: true})
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			log.Errorf("Command timed out: %s %s", c.Binary, strings.Join(args, " "))
			return res, fmt.Errorf("%w: %s", ErrTimeout, strings.Join(args, " "))
		}
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Args: args, Code: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

func (c *Client) shell(ctx context.Context, format string, paths ...string) error {
	quoted := make([]any, len(paths))
	for i, p := range paths {
		quoted[i] = Quote(p)
	}
	_, err := c.run(ctx, "shell", fmt.Sprintf(format, quoted...))
	return err
}

// Devices lists the devices adb can talk to. Unauthorized and offline
// devices are logged and left out.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	res, err := c.run(ctx, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	var ready []Device
	for _, d := range parseDevices(res.Stdout) {
		if !d.Ready() {
			log.Warnf("device %s is %s", d.Serial, d.State)
			continue
		}
		ready = append(ready, d)
	}
	return ready, nil
}

func (c *Client) Connected(ctx context.Context) bool {
	devices, err := c.Devices(ctx)
	if err != nil {
		log.Debug(err)
		return false
	}
	if c.Serial == "" {
		return len(devices) > 0
	}
	for _, d := range devices {
		if d.Serial == c.Serial {
			return true
		}
	}
	return false
}

// List returns the entries of dir without "." and "..". A linked
// directory such as /sdcard is listed through the link.
func (c *Client) List(ctx context.Context, dir string) ([]FileItem, error) {
	log.Debugf("Listing directory: %s", dir)
	// the trailing slash makes ls list the target of a linked directory
	target := strings.TrimRight(dir, "/") + "/"
	res, err := c.run(ctx, "shell", fmt.Sprintf(`ls -la %s 2>/dev/null || echo "error"`, Quote(target)))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.Stdout) == "error" {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchPath, dir)
	}
	items := parseListing(dir, res.Stdout)
	log.Debugf("parsed %d items", len(items))
	return items, nil
}

func (c *Client) Pull(ctx context.Context, remote, local string) error {
	_, err := c.run(ctx, "pull", remote, local)
	return err
}

func (c *Client) Push(ctx context.Context, local, remote string) error {
	_, err := c.run(ctx, "push", local, remote)
	return err
}

func (c *Client) Rename(ctx context.Context, oldPath, newPath string) error {
	return c.shell(ctx, "mv %s %s", oldPath, newPath)
}

func (c *Client) Delete(ctx context.Context, p string, isDir bool) error {
	if isDir {
		return c.shell(ctx, "rm -r %s", p)
	}
	return c.shell(ctx, "rm %s", p)
}

func (c *Client) CreateFile(ctx context.Context, p string) error {
	return c.shell(ctx, "touch %s", p)
}

func (c *Client) CreateFolder(ctx context.Context, p string) error {
	return c.shell(ctx, "mkdir -p %s", p)
}

// Copy copies src to dst on the device, creating the parent of dst first.
func (c *Client) Copy(ctx context.Context, src, dst string) error {
	c.ensureParent(ctx, dst)
	return c.shell(ctx, "cp -r %s %s", src, dst)
}

func (c *Client) Move(ctx context.Context, src, dst string) error {
	c.ensureParent(ctx, dst)
	return c.shell(ctx, "mv %s %s", src, dst)
}

// ensureParent is best effort; the following command reports the real
// failure.
func (c *Client) ensureParent(ctx context.Context, p string) {
	parent := path.Dir(p)
	if parent == "." || parent == "/" {
		return
	}
	if err := c.CreateFolder(ctx, parent); err != nil {
		log.Debugf("mkdir %s: %s", parent, err)
	}
}
