//go:build windows

// Package process terminates the headless browser started for PDF output
// together with its renderer and GPU helpers.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child processes with taskkill /T.
// Errors are ignored: the tree may already be gone, and the launcher's own
// Kill runs afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- numeric pid
}
