package renderer

import (
	"errors"
	"testing"
)

func TestParseThreadCount(t *testing.T) {
	tests := []struct {
		input   string
		want    ThreadCount
		wantErr bool
	}{
		{"all", AllThreads(), false},
		{"", AllThreads(), false},
		{"4", Threads(4), false},
		{"left:2", LeaveThreads(2), false},
		{"LEFT:0", LeaveThreads(0), false},
		{"0", ThreadCount{}, true},
		{"-3", ThreadCount{}, true},
		{"left:-1", ThreadCount{}, true},
		{"many", ThreadCount{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseThreadCount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidThreads) {
					t.Errorf("expected ErrInvalidThreads, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseThreadCount(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseThreadCount(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if back, _ := ParseThreadCount(got.String()); back != got {
				t.Errorf("String() %q does not parse back to %+v", got.String(), got)
			}
		})
	}
}

func TestThreadCountResolve(t *testing.T) {
	tests := []struct {
		name  string
		count ThreadCount
		cpus  int
		want  int
	}{
		{"all", AllThreads(), 8, 8},
		{"exact", Threads(3), 8, 3},
		{"exact beyond cpus", Threads(16), 8, 16},
		{"leave some", LeaveThreads(2), 8, 6},
		{"leave all", LeaveThreads(8), 8, 1},
		{"leave more than available", LeaveThreads(20), 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.count.resolve(tt.cpus); got != tt.want {
				t.Errorf("resolve(%d) = %d, want %d", tt.cpus, got, tt.want)
			}
		})
	}

	if n := AllThreads().Resolve(); n < 1 {
		t.Errorf("AllThreads().Resolve() = %d, want at least 1", n)
	}
}
