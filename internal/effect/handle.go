package effect

import (
	"errors"
	"fmt"
	"log"
)

// ErrNoSurface is returned by Run on a handle built without a surface.
var ErrNoSurface = errors.New("effect: handle has no surface")

// State is the lifecycle position of a Handle.
type State int

const (
	// StateConfigured: built, not attached.
	StateConfigured State = iota
	// StateAttached: node is in the surface's layer list and emitting.
	StateAttached
	// StateDetaching: births stopped, live particles finish their lifetime.
	StateDetaching
	// StateDisposed: node removed, the handle is spent.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateAttached:
		return "attached"
	case StateDetaching:
		return "detaching"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Handle binds one descriptor to one surface. It holds a non-owning reference
// to the surface; tearing the surface down is the caller's job, after which
// Dispose still succeeds.
//
// Handle is not safe for concurrent use. Call it from the goroutine that owns
// the surface.
type Handle struct {
	desc    Descriptor
	surface Surface
	layer   *EmitterLayer
	state   State

	stoppedAt float64
}

// State returns the current lifecycle state.
func (h *Handle) State() State { return h.state }

// Descriptor returns the configuration the handle was built with.
func (h *Handle) Descriptor() Descriptor { return h.desc }

// Layer returns the attached node, or nil before Run.
func (h *Handle) Layer() *EmitterLayer { return h.layer }

// Run attaches a fresh emitter node to the surface. It is valid only once,
// from StateConfigured; a second Run is rejected. On attach failure the handle
// stays configured.
func (h *Handle) Run() (*Handle, error) {
	if h.state != StateConfigured {
		return h, &InvalidStateError{Op: "run", State: h.state}
	}
	if h.surface == nil {
		return h, ErrNoSurface
	}

	layer := newEmitterLayer(h.desc)
	layer.Config.BeginTime = h.surface.RenderTime()
	if err := h.surface.AddSublayer(layer); err != nil {
		return h, fmt.Errorf("effect: attach %s: %w", h.desc.variant, err)
	}

	h.layer = layer
	h.state = StateAttached
	log.Printf("[Effect] %s 已挂载, beginTime=%.3f", h.desc.variant, layer.Config.BeginTime)
	return h, nil
}

// Stop ends particle births. The node stays attached and already emitted
// particles live out their own lifetime. Valid only from StateAttached.
func (h *Handle) Stop() error {
	if h.state != StateAttached {
		return &InvalidStateError{Op: "stop", State: h.state}
	}

	h.layer.Lifetime = 0
	h.layer.BirthRate = 0
	h.stoppedAt = h.surface.RenderTime()
	h.state = StateDetaching
	log.Printf("[Effect] %s 停止发射, t=%.3f", h.desc.variant, h.stoppedAt)
	return nil
}

// DrainDeadline returns the render-clock time after which no particle emitted
// by this handle can still be alive. ok is false until Stop has been called.
func (h *Handle) DrainDeadline() (deadline float64, ok bool) {
	if h.state != StateDetaching {
		return 0, false
	}
	var longest float64
	for _, c := range h.desc.cells {
		if l := c.MaxLifetime(); l > longest {
			longest = l
		}
	}
	return h.stoppedAt + longest, true
}

// Dispose removes the node from the surface. It is idempotent and valid in
// every state; a node the surface already dropped counts as removed.
func (h *Handle) Dispose() error {
	switch h.state {
	case StateDisposed:
		return nil
	case StateAttached, StateDetaching:
		err := h.surface.RemoveSublayer(h.layer)
		if err != nil && !errors.Is(err, ErrLayerNotAttached) {
			return fmt.Errorf("effect: detach %s: %w", h.desc.variant, err)
		}
		log.Printf("[Effect] %s 已移除", h.desc.variant)
	}
	h.state = StateDisposed
	return nil
}
