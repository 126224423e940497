package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// EnvViewer prepares an image viewer command using $TWEETSENTIMENT_VIEWER
// (fallback: "open" on macOS, "xdg-open" elsewhere).
// It does NOT run the viewer itself; callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea releases the terminal while it runs.
type EnvViewer struct {
	goos string
}

// NewEnvViewer creates an EnvViewer.
func NewEnvViewer() *EnvViewer {
	return &EnvViewer{goos: runtime.GOOS}
}

// Command returns the viewer argv without the file argument.
func (v *EnvViewer) Command() []string {
	if custom := strings.Fields(os.Getenv("TWEETSENTIMENT_VIEWER")); len(custom) > 0 {
		return custom
	}
	if v.goos == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open"}
}

// Cmd prepares an *exec.Cmd that opens path.
func (v *EnvViewer) Cmd(path string) (*exec.Cmd, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("viewing %s: %w", path, err)
	}
	argv := v.Command()
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("image viewer %q not available: %w", argv[0], err)
	}
	args := append(append([]string{}, argv[1:]...), path)
	return exec.Command(argv[0], args...), nil
}
