package builder

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Outputs records key=value results for CI, in the GITHUB_OUTPUT file format.
type Outputs struct {
	w io.Writer
}

func NewOutputs(w io.Writer) *Outputs {
	return &Outputs{w: w}
}

// OpenGitHubOutputs appends to the file named by $GITHUB_OUTPUT. Without it
// the outputs are only logged.
func OpenGitHubOutputs() (*Outputs, func() error) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return &Outputs{}, func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logrus.Warnf("Could not open GITHUB_OUTPUT file %s: %v", path, err)
		return &Outputs{}, func() error { return nil }
	}
	return &Outputs{w: f}, f.Close
}

func (o *Outputs) Write(name, value string) {
	if o == nil || o.w == nil {
		logrus.Debugf("output %s=%s", name, value)
		return
	}
	fmt.Fprintf(o.w, "%s=%s\n", name, value)
}

func sha256File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash for %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(hash.Sum(nil)), nil
}
