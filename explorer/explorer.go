// Package explorer implements the file manager operations on top of a
// device: sorting and filtering listings, clipboard style copy and move,
// transfers between host and device, and batch renaming.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adb-explorer/adbexplorer/adb"
	"github.com/sirupsen/logrus"
)

// Device is the subset of *adb.Client the explorer needs.
type Device interface {
	List(ctx context.Context, dir string) ([]adb.FileItem, error)
	Pull(ctx context.Context, remote, local string) error
	Push(ctx context.Context, local, remote string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	CreateFolder(ctx context.Context, p string) error
	Copy(ctx context.Context, src, dst string) error
	Move(ctx context.Context, src, dst string) error
}

var _ Device = (*adb.Client)(nil)

var log = logrus.WithField("part", "Explorer")

var (
	ErrTooFewItems = errors.New("batch rename needs at least 2 items")
	ErrEmptyName   = errors.New("name must not be empty")
)

// ItemError records the failure of one item in a multi item operation.
type ItemError struct {
	Path string
	Err  error
}

func (e *ItemError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *ItemError) Unwrap() error { return e.Err }

// Report is the outcome of an operation that keeps going after a failed
// item.
type Report struct {
	Done   int
	Total  int
	Failed []*ItemError
}

func (r *Report) fail(p string, err error) {
	log.WithError(err).Debugf("%s failed", p)
	r.Failed = append(r.Failed, &ItemError{Path: p, Err: err})
}

// Err joins every item failure, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, len(r.Failed))
	for i, e := range r.Failed {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// FormatSize renders a byte count with one decimal, 1024 based.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// Sort orders items directories first, then by name ignoring case.
func Sort(items []adb.FileItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// Filter keeps the items whose name contains text, ignoring case.
func Filter(items []adb.FileItem, text string) []adb.FileItem {
	if text == "" {
		return items
	}
	text = strings.ToLower(text)
	var out []adb.FileItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), text) {
			out = append(out, it)
		}
	}
	return out
}

// JoinRemote joins a device directory and a name with a single slash.
func JoinRemote(dir, name string) string {
	return strings.TrimRight(dir, "/") + "/" + name
}

func baseRemote(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func dirRemote(p string) string {
	p = strings.TrimRight(p, "/")
	i := strings.LastIndex(p, "/")
	switch {
	case i > 0:
		return p[:i]
	case i == 0:
		return "/"
	}
	return "."
}
