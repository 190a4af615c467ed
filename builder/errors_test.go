package builder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/adb-explorer/adbexplorer/builder"
)

func TestExitCode(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{nil, 0},
		{&builder.PackagingError{Code: 7}, 7},
		{fmt.Errorf("run: %w", &builder.PackagingError{Code: 2}), 2},
		{&builder.PackagingError{Code: -1}, 1},
		{&builder.PackagingError{Code: 0, Err: errors.New("exec failed")}, 1},
		{builder.ErrArtifactMissing, 1},
		{&builder.StepError{Phase: builder.PhaseInstall, Code: 5}, 1},
	} {
		if got := builder.ExitCode(tc.err); got != tc.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
