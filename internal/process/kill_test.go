package process

// KillProcessGroup is only exercised with an invalid PID: PID 0 would target
// the test's own process group.

import (
	"os/exec"
	"testing"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestIsolate(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	Isolate(cmd)
	// Must not panic and must leave the command runnable.
	if cmd.Path == "" {
		t.Error("Isolate() cleared the command path")
	}
}
