package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions  = errors.New("renderer: image dimensions must be positive")
	ErrInvalidSamples     = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidDepth       = errors.New("renderer: max depth must not be negative")
	ErrInvalidMedium      = errors.New("renderer: scatter probability must be within [0, 1]")
	ErrInvalidThreads     = errors.New("renderer: invalid thread count")
	ErrUnknownStrategy    = errors.New("renderer: unknown scheduling strategy")
	ErrUnknownAccelerator = errors.New("renderer: unknown accelerator")
	ErrInvalidCamera      = errors.New("renderer: invalid camera")
	ErrCameraMismatch     = errors.New("renderer: camera resolution differs from render resolution")
	ErrPixelPanic         = errors.New("renderer: pixel function panicked")
	ErrNonFinite          = errors.New("renderer: pixel produced a non-finite color")
)

// RenderError reports a failed fill. Err joins the error of every failed row.
type RenderError struct {
	FailedRows int
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed in %d row(s): %v", e.FailedRows, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// newRenderError joins row errors, returning nil if none failed
func newRenderError(rowErrs []error) error {
	failed := 0
	for _, err := range rowErrs {
		if err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return &RenderError{FailedRows: failed, Err: errors.Join(rowErrs...)}
}
