package builder

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/sirupsen/logrus"
)

// matches vX.Y.Z(-N-gHASH)
var versionRegexp = regexp.MustCompile(`v(\d+\.\d+\.\d+)(?:-(\d+)-(\w+))?`)

var commitRegexp = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// DescribeVersion derives a build tag (X.Y.Z-PATCH[-gHASH]) for the sources
// in dir from git. Any git failure yields 0.0.0-0.
func DescribeVersion(ctx context.Context, runner utils.Runner, dir string) string {
	res, err := runner.Run(ctx, utils.Cmd{
		Name:   "git",
		Args:   []string{"describe", "--tags", "--always"},
		Dir:    dir,
		Hidden: true,
	})
	if err != nil || res.ExitCode != 0 {
		logrus.Debugf("git describe unavailable, using default version")
		return "0.0.0-0"
	}
	return parseVersion(strings.TrimSpace(res.Stdout))
}

func parseVersion(gitTag string) string {
	verMatch := versionRegexp.FindStringSubmatch(gitTag)
	if verMatch == nil {
		if commitRegexp.MatchString(gitTag) {
			return fmt.Sprintf("0.0.0-0-%s", gitTag[:min(7, len(gitTag))])
		}
		return "0.0.0-0"
	}
	patch := verMatch[2]
	if patch == "" {
		patch = "0"
	}
	tag := fmt.Sprintf("%s-%s", verMatch[1], patch)
	if verMatch[3] != "" {
		tag += "-" + verMatch[3]
	}
	return tag
}
