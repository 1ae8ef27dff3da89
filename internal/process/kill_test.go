package process

// Notes:
// - Only PIDs that cannot name a live process group are used. Killing a real
//   group is covered by the browser cleanup in the root package integration
//   tests.

import "testing"

func TestKillProcessGroup_IgnoresInvalidPIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  int
	}{
		// Zero would target the caller's own group without the guard.
		{"zero", 0},
		{"negative", -1},
		{"nonexistent", 999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			KillProcessGroup(tt.pid) // must neither panic nor signal us
		})
	}
}
