package game

import (
	"sync"

	"office3d/internal/world"
)

// EnvironmentProvider supplies loadable scene assets. Loading happens
// out-of-band; the returned handle completes exactly once.
type EnvironmentProvider interface {
	Load(id string) *LoadHandle
}

// LoadHandle is a single-completion future for an environment load. Unlike
// a listener list, only one callback can ever be attached and completion
// fires it exactly once, so duplicate-registration races cannot happen.
type LoadHandle struct {
	mu       sync.Mutex
	done     bool
	env      *world.Environment
	err      error
	callback func(*world.Environment, error)
}

func NewLoadHandle() *LoadHandle {
	return &LoadHandle{}
}

// Complete delivers the load result. Calls after the first are ignored.
func (h *LoadHandle) Complete(env *world.Environment, err error) {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.done = true
	h.env = env
	h.err = err
	cb := h.callback
	h.mu.Unlock()

	if cb != nil {
		cb(env, err)
	}
}

// OnComplete attaches the single completion callback. If the handle already
// completed, the callback runs immediately. A second attachment replaces
// nothing and is dropped.
func (h *LoadHandle) OnComplete(fn func(*world.Environment, error)) {
	h.mu.Lock()
	if h.callback != nil {
		h.mu.Unlock()
		return
	}
	if h.done {
		env, err := h.env, h.err
		h.mu.Unlock()
		fn(env, err)
		return
	}
	h.callback = fn
	h.mu.Unlock()
}
