package builder

import (
	"context"
	"testing"

	"github.com/adb-explorer/adbexplorer/utils"
)

func TestParseVersion(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"v1.2.3", "1.2.3-0"},
		{"v1.2.3-4-gabc1234", "1.2.3-4-gabc1234"},
		{"v10.20.30-1-g0f0f0f0", "10.20.30-1-g0f0f0f0"},
		{"abc1234def", "0.0.0-0-abc1234"},
		{"garbage", "0.0.0-0"},
	} {
		if got := parseVersion(tc.in); got != tc.want {
			t.Errorf("parseVersion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type gitStub struct {
	res utils.Result
	err error
}

func (g gitStub) Run(context.Context, utils.Cmd) (utils.Result, error) { return g.res, g.err }

func TestDescribeVersionFallsBack(t *testing.T) {
	got := DescribeVersion(context.Background(), gitStub{res: utils.Result{ExitCode: 128}}, ".")
	if got != "0.0.0-0" {
		t.Errorf("got %q", got)
	}
	got = DescribeVersion(context.Background(), gitStub{res: utils.Result{Stdout: "v2.0.1\n"}}, ".")
	if got != "2.0.1-0" {
		t.Errorf("got %q", got)
	}
}
