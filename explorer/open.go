package explorer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adb-explorer/adbexplorer/utils"
	"github.com/flytam/filenamify"
	"github.com/google/uuid"
)

// OpenCommand returns the command that opens path with the default
// application on goos.
func OpenCommand(goos, path string) utils.Cmd {
	switch goos {
	case "windows":
		return utils.Cmd{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler", path}, Hidden: true}
	case "darwin":
		return utils.Cmd{Name: "open", Args: []string{path}}
	}
	return utils.Cmd{Name: "xdg-open", Args: []string{path}}
}

// Open pulls the file at remote into a fresh temporary directory, keeping
// its name so the host picks the application by extension, and opens it.
// The copy stays behind for the application and its path is returned.
func Open(ctx context.Context, dev Device, runner utils.Runner, goos, remote string) (string, error) {
	name, err := filenamify.FilenamifyV2(baseRemote(remote))
	if err != nil {
		return "", err
	}
	dir := filepath.Join(os.TempDir(), "adbexplorer-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	local := filepath.Join(dir, name)
	if err := dev.Pull(ctx, remote, local); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("pull %s: %w", remote, err)
	}

	cmd := OpenCommand(goos, local)
	res, err := runner.Run(ctx, cmd)
	if err != nil {
		return local, err
	}
	if res.ExitCode != 0 {
		return local, fmt.Errorf("%s exited with code %d", cmd.Name, res.ExitCode)
	}
	return local, nil
}
