package explorer

import (
	"context"
	"fmt"

	"github.com/adb-explorer/adbexplorer/adb"
)

// Chooser asks the operator to pick one option and returns its index.
type Chooser func(ctx context.Context, message string, options []string) (int, error)

// ChooseDevice picks the device to work with. A single device is used
// without asking.
func ChooseDevice(ctx context.Context, devices []adb.Device, message string, choose Chooser) (adb.Device, error) {
	switch len(devices) {
	case 0:
		return adb.Device{}, adb.ErrNoDevice
	case 1:
		return devices[0], nil
	}
	if choose == nil {
		return adb.Device{}, fmt.Errorf("%d devices attached, select one with -s", len(devices))
	}
	options := make([]string, len(devices))
	for i, d := range devices {
		options[i] = fmt.Sprintf("%s (%s)", d.Model, d.Serial)
	}
	i, err := choose(ctx, message, options)
	if err != nil {
		return adb.Device{}, err
	}
	if i < 0 || i >= len(devices) {
		return adb.Device{}, fmt.Errorf("invalid choice %d", i)
	}
	return devices[i], nil
}
