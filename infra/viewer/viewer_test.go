package viewer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommand_Fallbacks(t *testing.T) {
	t.Setenv("TWEETSENTIMENT_VIEWER", "")
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tc := range tests {
		v := &EnvViewer{goos: tc.goos}
		if got := v.Command(); len(got) != 1 || got[0] != tc.want {
			t.Fatalf("%s: got %q want %q", tc.goos, got, tc.want)
		}
	}
}

func TestCmd_UsesViewerEnvAndAppendsPath(t *testing.T) {
	t.Setenv("TWEETSENTIMENT_VIEWER", "cat -n")
	path := filepath.Join(t.TempDir(), "cloud.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd, err := NewEnvViewer().Cmd(path)
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	if len(cmd.Args) != 3 || cmd.Args[1] != "-n" || cmd.Args[2] != path {
		t.Fatalf("unexpected args: %q", cmd.Args)
	}
}

func TestCmd_Errors(t *testing.T) {
	t.Setenv("TWEETSENTIMENT_VIEWER", "cat")
	if _, err := NewEnvViewer().Cmd(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "cloud.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TWEETSENTIMENT_VIEWER", "tweetsentiment-no-such-viewer")
	if _, err := NewEnvViewer().Cmd(path); err == nil {
		t.Fatalf("expected error for missing viewer")
	}
}
