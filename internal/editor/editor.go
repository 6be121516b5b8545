package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Detect resolves the user's editor from $VISUAL, then $EDITOR,
// defaulting to vi.
func Detect() string {
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}

// Open runs the editor on path and blocks until it exits. The editor
// value may carry arguments ("code --wait").
func Open(path string) error {
	parts := strings.Fields(Detect())
	bin := parts[0]
	args := append(parts[1:], path)

	cmd := exec.Command(bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
