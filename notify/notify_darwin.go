//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

func send(summary, body string) {
	esc := func(s string) string { return strings.ReplaceAll(s, `"`, `\"`) }
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, esc(body), esc(summary))
	exec.Command("osascript", "-e", script).Run()
}
