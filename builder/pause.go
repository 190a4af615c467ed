package builder

import (
	"io"
	"os"

	"github.com/adb-explorer/adbexplorer/locale"
	"github.com/adb-explorer/adbexplorer/utils"
)

// Pauser holds a failed run open until the operator acknowledges it.
type Pauser interface {
	Pause()
}

// TermPauser waits for a key press on a terminal and does nothing otherwise.
type TermPauser struct {
	In  *os.File
	Out io.Writer
}

func (p TermPauser) Pause() {
	utils.WaitForKey(p.In, p.Out, locale.Loc("press_any_key", nil))
}

type noPause struct{}

func (noPause) Pause() {}
