package explorer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adb-explorer/adbexplorer/adb"
	"github.com/flytam/filenamify"
)

// Upload pushes a file or a folder into remoteDir. A folder keeps its
// structure under remoteDir/<name>. It stops at the first failure and
// returns the number of files pushed so far.
func Upload(ctx context.Context, dev Device, local, remoteDir string) (int, error) {
	info, err := os.Stat(local)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		if err := dev.Push(ctx, local, JoinRemote(remoteDir, filepath.Base(local))); err != nil {
			return 0, err
		}
		return 1, nil
	}

	root := JoinRemote(remoteDir, filepath.Base(filepath.Clean(local)))
	count := 0
	err = filepath.WalkDir(local, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(local, p)
		if err != nil {
			return err
		}
		remote := root
		if rel != "." {
			remote = JoinRemote(root, filepath.ToSlash(rel))
		}
		if d.IsDir() {
			return dev.CreateFolder(ctx, remote)
		}
		if err := dev.Push(ctx, p, remote); err != nil {
			return fmt.Errorf("upload %s: %w", p, err)
		}
		count++
		return nil
	})
	return count, err
}

// Download pulls items into localDir, turning device names into valid host
// file names. It stops at the first failure.
func Download(ctx context.Context, dev Device, items []adb.FileItem, localDir string) (int, error) {
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return 0, err
	}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		name, err := filenamify.FilenamifyV2(it.Name)
		if err != nil {
			return i, err
		}
		if err := dev.Pull(ctx, it.Path, filepath.Join(localDir, name)); err != nil {
			return i, fmt.Errorf("download %s: %w", it.Path, err)
		}
	}
	return len(items), nil
}
