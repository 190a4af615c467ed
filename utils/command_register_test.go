package utils

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"testing"

	"github.com/google/subcommands"
)

func TestExitStatus(t *testing.T) {
	f := flag.NewFlagSet("x", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	for _, tc := range []struct {
		err  error
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{&ExitError{Code: 7}, 7},
		{fmt.Errorf("wrapped: %w", &ExitError{Code: 3}), 3},
		{ErrUsage, subcommands.ExitUsageError},
		{context.Canceled, subcommands.ExitFailure},
		{errors.New("boom"), subcommands.ExitFailure},
	} {
		if got := ExitStatus(tc.err, f); got != tc.want {
			t.Errorf("ExitStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type panicCMD struct{}

func (panicCMD) Name() string             { return "panic" }
func (panicCMD) Synopsis() string         { return "" }
func (panicCMD) SetFlags(f *flag.FlagSet) {}
func (panicCMD) Execute(context.Context, *flag.FlagSet) error {
	panic("broken")
}

func TestWrapperRecoversPanics(t *testing.T) {
	got := cmdWrapper{panicCMD{}}.Execute(context.Background(), flag.NewFlagSet("panic", flag.ContinueOnError))
	if got != subcommands.ExitFailure {
		t.Errorf("status = %d", got)
	}
}

func TestRegisterCommandListsSynopsis(t *testing.T) {
	RegisterCommand(panicCMD{}, "test")
	if _, ok := ValidCMDs["panic"]; !ok {
		t.Errorf("panic missing from %v", ValidCMDs)
	}
}
