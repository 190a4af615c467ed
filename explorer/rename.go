package explorer

import (
	"context"
	"fmt"
	"strconv"
)

// BatchRenameTargets returns the new path for each of paths: base followed
// by the 1 based index, zero padded to the width of the count.
func BatchRenameTargets(paths []string, base string) ([]string, error) {
	if len(paths) < 2 {
		return nil, ErrTooFewItems
	}
	if base == "" {
		return nil, ErrEmptyName
	}
	width := len(strconv.Itoa(len(paths)))
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = JoinRemote(dirRemote(p), fmt.Sprintf("%s%0*d", base, width, i+1))
	}
	return out, nil
}

func BatchRename(ctx context.Context, dev Device, paths []string, base string) (*Report, error) {
	targets, err := BatchRenameTargets(paths, base)
	if err != nil {
		return nil, err
	}
	r := &Report{Total: len(paths)}
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		if err := dev.Rename(ctx, p, targets[i]); err != nil {
			r.fail(p, err)
			continue
		}
		r.Done++
	}
	return r, nil
}
