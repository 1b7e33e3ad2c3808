package chat

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard pipes message content to the platform clipboard tool.
// Backs the /copy command; there is no in-process fallback when no tool is
// installed, the error surfaces on the status line instead.
func copyToClipboard(text string) error {
	cmd, err := clipboardCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func clipboardCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "windows":
		return exec.Command("cmd", "/c", "clip"), nil
	default:
		if path, err := exec.LookPath("wl-copy"); err == nil {
			return exec.Command(path), nil
		}
		if path, err := exec.LookPath("xclip"); err == nil {
			return exec.Command(path, "-selection", "clipboard"), nil
		}
		if path, err := exec.LookPath("xsel"); err == nil {
			return exec.Command(path, "--clipboard", "--input"), nil
		}
		return nil, fmt.Errorf("clipboard tool not found (install wl-clipboard, xclip, or xsel)")
	}
}
