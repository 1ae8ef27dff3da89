//go:build !windows

// Package process terminates the headless browser started for PDF output
// together with its renderer and GPU helpers.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Errors are ignored: the group may already be gone, and the launcher's own
// Kill runs afterwards.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
