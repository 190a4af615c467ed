package utils

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Command is a subcommand that reports failure as an error.
type Command interface {
	Name() string
	Synopsis() string
	SetFlags(f *flag.FlagSet)
	Execute(ctx context.Context, f *flag.FlagSet) error
}

// ErrUsage makes the command print its usage and exit with status 2.
var ErrUsage = errors.New("invalid usage")

// ExitError ends a command with Code once the failure has been reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ValidCMDs maps every registered command name to its synopsis.
var ValidCMDs = make(map[string]string, 0)

type cmdWrapper struct {
	Command
}

func (c cmdWrapper) Usage() string {
	return c.Name() + ": " + c.Synopsis() + "\n"
}

func (c cmdWrapper) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	err := RecoverCall(func() error {
		return c.Command.Execute(ctx, f)
	})
	return ExitStatus(err, f)
}

// ExitStatus turns the error of a command into its exit status, reporting
// it on the way.
func ExitStatus(err error, f *flag.FlagSet) subcommands.ExitStatus {
	var exitErr *ExitError
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.As(err, &exitErr):
		return subcommands.ExitStatus(exitErr.Code)
	case errors.Is(err, ErrUsage):
		if f != nil {
			f.Usage()
		}
		return subcommands.ExitUsageError
	case errors.Is(err, ErrPanic):
		return subcommands.ExitFailure
	case errors.Is(err, context.Canceled), errors.Is(err, ErrCancelled):
		logrus.Info("cancelled")
		return subcommands.ExitFailure
	}
	logrus.Error(err)
	return subcommands.ExitFailure
}

func RegisterCommand(sub Command, group string) {
	subcommands.Register(cmdWrapper{sub}, group)
	ValidCMDs[sub.Name()] = sub.Synopsis()
}
