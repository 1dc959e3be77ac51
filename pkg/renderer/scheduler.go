package renderer

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// PixelFunc computes the color of pixel (x, y). It is called exactly once per
// pixel and may be called from several goroutines at once.
type PixelFunc func(x, y int) (core.Vec3, error)

// Scheduler decides how the pixels of an image are distributed over goroutines.
// Every strategy produces the same buffer for a deterministic PixelFunc. If any
// pixel fails the whole fill fails with a *RenderError and no buffer.
type Scheduler interface {
	Fill(width, height int, fn PixelFunc) (*OutputBuffer, error)
}

// Strategy names a Scheduler implementation
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyBanded     Strategy = "banded"
	StrategyWorkSteal  Strategy = "worksteal"
)

// Strategies lists every supported strategy
func Strategies() []Strategy {
	return []Strategy{StrategySequential, StrategyBanded, StrategyWorkSteal}
}

// ParseStrategy converts a strategy name into a Strategy
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// NewScheduler creates the scheduler for strategy using threads goroutines
// where the strategy is concurrent
func NewScheduler(strategy Strategy, threads int) (Scheduler, error) {
	if threads < 1 {
		threads = 1
	}
	switch strategy {
	case StrategySequential:
		return SequentialScheduler{}, nil
	case StrategyBanded:
		return BandedScheduler{Threads: threads}, nil
	case StrategyWorkSteal:
		return WorkStealingScheduler{Threads: threads}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// renderRow fills row y of buf. A panic in fn is turned into an error.
func renderRow(buf *OutputBuffer, y int, fn PixelFunc) (err error) {
	x := 0
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pixel (%d, %d): %w: %v", x, y, ErrPixelPanic, r)
		}
	}()

	row := buf.Row(y)
	for ; x < len(row); x++ {
		c, pixelErr := fn(x, y)
		if pixelErr != nil {
			return fmt.Errorf("pixel (%d, %d): %w", x, y, pixelErr)
		}
		row[x] = c
	}
	return nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// SequentialScheduler renders every row on the calling goroutine
type SequentialScheduler struct{}

func (SequentialScheduler) Fill(width, height int, fn PixelFunc) (*OutputBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	buf := NewOutputBuffer(width, height)
	rowErrs := make([]error, height)
	for y := 0; y < height; y++ {
		rowErrs[y] = renderRow(buf, y, fn)
	}

	if err := newRenderError(rowErrs); err != nil {
		return nil, err
	}
	return buf, nil
}

// BandedScheduler splits the image into Threads contiguous bands of rows
// and renders each band on its own goroutine
type BandedScheduler struct {
	Threads int
}

func (s BandedScheduler) Fill(width, height int, fn PixelFunc) (*OutputBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	bands := max(1, min(s.Threads, height))
	bandHeight := (height + bands - 1) / bands

	buf := NewOutputBuffer(width, height)
	rowErrs := make([]error, height)

	var g errgroup.Group
	for start := 0; start < height; start += bandHeight {
		end := min(start+bandHeight, height)
		g.Go(func() error {
			var bandErr error
			for y := start; y < end; y++ {
				// Each row owns its slot in rowErrs
				rowErrs[y] = renderRow(buf, y, fn)
				if bandErr == nil {
					bandErr = rowErrs[y]
				}
			}
			return bandErr
		})
	}

	if err := g.Wait(); err != nil {
		// Wait only reports the first failure; rowErrs has them all
		return nil, newRenderError(rowErrs)
	}
	return buf, nil
}

// WorkStealingScheduler hands out single rows to a pool of Threads workers.
// Idle workers take the next pending row, so uneven rows balance out.
type WorkStealingScheduler struct {
	Threads int
}

func (s WorkStealingScheduler) Fill(width, height int, fn PixelFunc) (*OutputBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	buf := NewOutputBuffer(width, height)
	pool := NewWorkerPool(height, s.Threads, func(y int) error {
		return renderRow(buf, y, fn)
	})

	pool.Start()
	for y := 0; y < height; y++ {
		pool.SubmitTask(RowTask{Y: y})
	}
	pool.Stop()

	rowErrs := make([]error, height)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		rowErrs[result.Y] = result.Err
	}

	if err := newRenderError(rowErrs); err != nil {
		return nil, err
	}
	return buf, nil
}
