//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// Isolate does nothing on Windows; KillProcessGroup walks the tree instead.
func Isolate(*exec.Cmd) {}

// KillProcessGroup force-terminates pid and its descendants with taskkill.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
