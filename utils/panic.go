package utils

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/sirupsen/logrus"
)

// ErrPanic marks an error recovered from a panic. It has already been
// printed.
var ErrPanic = errors.New("panic")

func PrintPanic(err error) {
	logrus.Error(locale.Loc("fatal_error", nil))
	println("")
	println("--COPY FROM HERE--")
	logrus.Infof("Version: %s", Version)
	logrus.Infof("Cmdline: %s", os.Args)
	logrus.Errorf("Error: %s", err)
	println("stacktrace from panic: \n" + string(debug.Stack()))
	println("--END COPY HERE--")
	println("")
	println(locale.Loc("report_issue", nil))
}

// RecoverCall runs f and turns a panic inside it into an error.
func RecoverCall(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, e)
			} else {
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
			PrintPanic(err)
		}
	}()
	err = f()
	return
}
