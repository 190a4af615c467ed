package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFileHookWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	logger.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	logger.AddHook(newFileHook(&buf))

	logger.WithField("run", "abcd1234").Warn("packaging failed")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("log file contains colour codes: %q", out)
	}
	if !strings.Contains(out, `msg="packaging failed"`) || !strings.Contains(out, "run=abcd1234") {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestSetupLoggingCreatesLogFile(t *testing.T) {
	hooks := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	defer logrus.StandardLogger().ReplaceHooks(hooks)

	path := filepath.Join(t.TempDir(), "logs", "adbexplorer.log")
	closeLog := setupLogging(path, false)
	logrus.Info("hello from the test")
	closeLog()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "hello from the test") {
		t.Errorf("log file content %q", b)
	}
}
