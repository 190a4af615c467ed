package adb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoDevice   = errors.New("no adb device connected")
	ErrTimeout    = errors.New("adb command timed out")
	ErrNoSuchPath = errors.New("no such path on device")
)

// CommandError is returned when adb itself ran but exited nonzero.
type CommandError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("adb %s: exit code %d", strings.Join(e.Args, " "), e.Code)
	}
	return fmt.Sprintf("adb %s: exit code %d: %s", strings.Join(e.Args, " "), e.Code, msg)
}
