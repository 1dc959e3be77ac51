package renderer

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/cpu"
)

// ThreadMode selects how a ThreadCount is interpreted
type ThreadMode int

const (
	ThreadsAll   ThreadMode = iota // One thread per logical CPU
	ThreadsCount                   // Exactly N threads
	ThreadsLeave                   // All logical CPUs but N
)

// ThreadCount describes how many worker goroutines to use
type ThreadCount struct {
	Mode ThreadMode
	N    int
}

// AllThreads uses every logical CPU
func AllThreads() ThreadCount {
	return ThreadCount{Mode: ThreadsAll}
}

// Threads uses exactly n workers
func Threads(n int) ThreadCount {
	return ThreadCount{Mode: ThreadsCount, N: n}
}

// LeaveThreads leaves n logical CPUs free
func LeaveThreads(n int) ThreadCount {
	return ThreadCount{Mode: ThreadsLeave, N: n}
}

// ParseThreadCount accepts "all", a positive count such as "4", or "left:N"
func ParseThreadCount(s string) (ThreadCount, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return AllThreads(), nil
	}

	mode := ThreadsCount
	if rest, ok := strings.CutPrefix(s, "left:"); ok {
		mode = ThreadsLeave
		s = rest
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return ThreadCount{}, fmt.Errorf("%w: %q", ErrInvalidThreads, s)
	}
	tc := ThreadCount{Mode: mode, N: n}
	if err := tc.Validate(); err != nil {
		return ThreadCount{}, err
	}
	return tc, nil
}

// Validate checks N fits the mode
func (tc ThreadCount) Validate() error {
	switch tc.Mode {
	case ThreadsAll:
		return nil
	case ThreadsCount:
		if tc.N < 1 {
			return fmt.Errorf("%w: need at least one thread, got %d", ErrInvalidThreads, tc.N)
		}
		return nil
	case ThreadsLeave:
		if tc.N < 0 {
			return fmt.Errorf("%w: cannot leave %d threads", ErrInvalidThreads, tc.N)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown mode %d", ErrInvalidThreads, tc.Mode)
}

// Resolve returns the number of workers to start, never less than one
func (tc ThreadCount) Resolve() int {
	return tc.resolve(logicalCPUs())
}

func (tc ThreadCount) resolve(cpus int) int {
	n := cpus
	switch tc.Mode {
	case ThreadsCount:
		n = tc.N
	case ThreadsLeave:
		n = cpus - tc.N
	}
	return max(1, n)
}

func (tc ThreadCount) String() string {
	switch tc.Mode {
	case ThreadsCount:
		return strconv.Itoa(tc.N)
	case ThreadsLeave:
		return fmt.Sprintf("left:%d", tc.N)
	}
	return "all"
}

// logicalCPUs asks the OS for the logical core count, falling back to the Go runtime
func logicalCPUs() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
