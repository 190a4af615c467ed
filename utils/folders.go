package utils

import (
	"os"
	"path/filepath"
)

var CacheFolder string

func init() {
	if dir, err := os.UserCacheDir(); err == nil {
		CacheFolder = filepath.Join(dir, CmdName)
	}
}

func PathCache(p ...string) string {
	pj := filepath.Join(p...)
	if filepath.IsAbs(pj) {
		return pj
	}
	return filepath.Join(CacheFolder, pj)
}
