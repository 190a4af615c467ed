package utils

import (
	"errors"
	"os"
	"path/filepath"
)

func walkDirRemove(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	names, err := f.Readdirnames(-1)
	f.Close()
	if err != nil {
		return err
	}

	var errs []error
	for _, name1 := range names {
		name2 := filepath.Join(name, name1)
		if err := os.Remove(name2); err != nil {
			if err := walkDirRemove(name2); err != nil {
				errs = append(errs, err)
				continue
			}
			if err := os.Remove(name2); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RemoveTree deletes dir and everything below it. Unlike os.RemoveAll it
// keeps going past entries it cannot delete and reports all of them.
// A missing dir is not an error.
func RemoveTree(dir string) error {
	if _, err := os.Lstat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := os.Remove(dir); err == nil {
		return nil
	}
	if err := walkDirRemove(dir); err != nil {
		return err
	}
	return os.Remove(dir)
}
