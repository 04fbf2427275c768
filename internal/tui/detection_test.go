package tui

import "testing"

func TestColorEnabled(t *testing.T) {
	orig := isTerminalFn
	t.Cleanup(func() { isTerminalFn = orig })

	tests := []struct {
		name     string
		terminal bool
		noColor  bool
		want     bool
	}{
		{"terminal", true, false, true},
		{"terminal with --no-color", true, true, false},
		{"pipe", false, false, false},
		{"pipe with --no-color", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminalFn = func(int) bool { return tt.terminal }
			if got := ColorEnabled(tt.noColor); got != tt.want {
				t.Errorf("ColorEnabled(%v) = %v, want %v", tt.noColor, got, tt.want)
			}
		})
	}
}
