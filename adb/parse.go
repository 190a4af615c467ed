package adb

import (
	"regexp"
	"strconv"
	"strings"
)

// Device is one entry of `adb devices -l`.
type Device struct {
	Serial string
	Model  string
	State  string
}

// Ready reports whether adb can talk to the device.
func (d Device) Ready() bool { return d.State == "device" }

type FileItem struct {
	Name        string
	Path        string
	IsDir       bool
	Size        int64
	Permissions string
	Modified    string
	// LinkTarget is set for symbolic links.
	LinkTarget string
}

func (f FileItem) IsLink() bool { return strings.HasPrefix(f.Permissions, "l") }

func parseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{Serial: fields[0], State: fields[1], Model: "Unknown"}
		for _, f := range fields[2:] {
			if model, ok := strings.CutPrefix(f, "model:"); ok {
				d.Model = model
				break
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// toolbox and toybox `ls -la` line: perms, links, owner, group, size, date, time, name
var listingLine = regexp.MustCompile(`^([\-dlcbpsrwxStT]+)\s+\d+\s+\S+\s+\S+\s+(\d+)\s+(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})\s+(.+)$`)

func parseListing(dir, out string) []FileItem {
	base := strings.TrimRight(dir, "/")
	var items []FileItem
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "total") {
			continue
		}
		m := listingLine.FindStringSubmatch(line)
		if m == nil {
			log.Tracef("skipping line %q", line)
			continue
		}
		perms, name := m[1], m[5]
		if name == "." || name == ".." {
			continue
		}
		size, _ := strconv.ParseInt(m[2], 10, 64)
		item := FileItem{
			Name:        name,
			IsDir:       strings.HasPrefix(perms, "d"),
			Size:        size,
			Permissions: perms,
			Modified:    m[3] + " " + m[4],
		}
		if strings.HasPrefix(perms, "l") {
			if n, target, ok := strings.Cut(name, " -> "); ok {
				item.Name, item.LinkTarget = n, target
			}
		}
		item.Path = base + "/" + item.Name
		items = append(items, item)
	}
	return items
}

// Quote makes p a single word for the device shell.
func Quote(p string) string {
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
