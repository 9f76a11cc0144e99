package logger

import (
	"bytes"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{
			name:    "enabled",
			enabled: true,
			want:    "\n[regview] === Parse ===\n[regview] 3 nodes\n[regview] warning: slow\n",
		},
		{
			name:    "disabled keeps warnings",
			enabled: false,
			want:    "[regview] warning: slow\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.enabled)
			l.SetOutput(&buf)

			l.Section("Parse")
			l.Log("%d nodes", 3)
			l.Warn("slow")

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if l.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", l.Enabled(), tt.enabled)
			}
		})
	}
}
