package pose

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoseSourceNotReady is returned when frames are processed before the
// pose model has finished loading.
var ErrPoseSourceNotReady = errors.New("pose source not ready")

// SourceState is the load state of the external pose model.
type SourceState string

const (
	SourceUnloaded SourceState = "unloaded"
	SourceLoading  SourceState = "loading"
	SourceReady    SourceState = "ready"
	SourceFailed   SourceState = "failed"
)

// SourceHandle tracks the load state of the external pose model. The
// surrounding application owns it and drives the transitions, typically from
// its loader goroutine; the engine only reads it.
type SourceHandle struct {
	mu    sync.Mutex
	name  string
	state SourceState
	err   error
}

// NewSourceHandle returns an unloaded handle.
func NewSourceHandle(name string) *SourceHandle {
	return &SourceHandle{name: name, state: SourceUnloaded}
}

// Name returns the model name the handle was created for.
func (h *SourceHandle) Name() string { return h.name }

// BeginLoad moves the handle to loading. It fails if a load is already in
// progress or has completed, which prevents loading the model twice.
func (h *SourceHandle) BeginLoad() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case SourceLoading, SourceReady:
		return fmt.Errorf("pose source %q: cannot begin load in state %s", h.name, h.state)
	}
	h.state = SourceLoading
	h.err = nil
	return nil
}

// MarkReady records a successful load.
func (h *SourceHandle) MarkReady() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = SourceReady
	h.err = nil
}

// MarkFailed records a failed load. A failed handle may be retried with
// BeginLoad.
func (h *SourceHandle) MarkFailed(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = SourceFailed
	h.err = err
}

// State returns the current state.
func (h *SourceHandle) State() SourceState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the load error recorded by MarkFailed, if any.
func (h *SourceHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// CheckReady returns nil when the model is ready, otherwise an error
// wrapping ErrPoseSourceNotReady.
func (h *SourceHandle) CheckReady() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == SourceReady {
		return nil
	}
	if h.err != nil {
		return fmt.Errorf("%w: %s is %s: %v", ErrPoseSourceNotReady, h.name, h.state, h.err)
	}
	return fmt.Errorf("%w: %s is %s", ErrPoseSourceNotReady, h.name, h.state)
}
