package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

var ErrCancelled = errors.New("input cancelled")

func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ChooseOne asks the operator to pick one of options and returns its index.
func ChooseOne(ctx context.Context, message string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	var out int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// WaitForKey prints prompt and blocks until a single key is pressed. It
// returns immediately when in is not a terminal so unattended runs never
// hang.
func WaitForKey(in *os.File, out io.Writer, prompt string) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	fmt.Fprint(out, prompt)
	state, err := term.MakeRaw(fd)
	var b [1]byte
	in.Read(b[:])
	if err == nil {
		term.Restore(fd, state)
	}
	fmt.Fprintln(out)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
