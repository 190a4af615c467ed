package explorer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adb-explorer/adbexplorer/adb"
	"github.com/google/uuid"
)

type Op int

const (
	OpCopy Op = iota
	OpMove
)

func (o Op) String() string {
	if o == OpMove {
		return "move"
	}
	return "copy"
}

// Paste copies or moves every item into destDir under its own name.
func Paste(ctx context.Context, dev Device, items []adb.FileItem, destDir string, op Op) (*Report, error) {
	r := &Report{Total: len(items)}
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		dst := JoinRemote(destDir, baseRemote(it.Path))
		log.Debugf("%s %s -> %s", op, it.Path, dst)
		var err error
		if op == OpMove {
			err = dev.Move(ctx, it.Path, dst)
		} else {
			err = dev.Copy(ctx, it.Path, dst)
		}
		if err != nil {
			r.fail(it.Path, err)
			continue
		}
		r.Done++
	}
	return r, nil
}

// CopyToPath copies items into target. Files travel through a temporary
// file on the host; directories are copied on the device.
func CopyToPath(ctx context.Context, dev Device, items []adb.FileItem, target string) (*Report, error) {
	r := &Report{Total: len(items)}
	if err := dev.CreateFolder(ctx, target); err != nil {
		return r, err
	}
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		dst := JoinRemote(target, it.Name)
		var err error
		if it.IsDir {
			err = dev.Copy(ctx, it.Path, dst)
		} else {
			err = copyViaHost(ctx, dev, it.Path, dst)
		}
		if err != nil {
			r.fail(it.Path, err)
			continue
		}
		r.Done++
	}
	return r, nil
}

func copyViaHost(ctx context.Context, dev Device, src, dst string) error {
	tmp := filepath.Join(os.TempDir(), "adbexplorer-"+uuid.NewString())
	defer os.Remove(tmp)
	if err := dev.Pull(ctx, src, tmp); err != nil {
		return err
	}
	return dev.Push(ctx, tmp, dst)
}
