package scratchcard

// GestureState is the scratching state machine.
type GestureState uint8

const (
	// Idle waits for a pointer down.
	Idle GestureState = iota

	// Scratching erases on every move until the pointer is released.
	Scratching
)

// String returns the state name.
func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scratching:
		return "scratching"
	default:
		return "unknown"
	}
}

// GestureHandler receives the window-level events of an active gesture.
// Card implements it.
type GestureHandler interface {
	PointerMove(in PointerInput) bool
	PointerUp()
	PointerLeave()
	PointerCancel()
}

// EventBinder attaches window-level move/up/leave/cancel listeners for
// the duration of one gesture. The returned release detaches them and is
// called exactly once when the gesture ends, whatever ended it.
//
// BindGesture is called from inside PointerDown and must not call back
// into the card synchronously.
type EventBinder interface {
	BindGesture(h GestureHandler) (release func())
}

// EventBinderFunc adapts a function to EventBinder.
type EventBinderFunc func(h GestureHandler) (release func())

// BindGesture implements EventBinder.
func (f EventBinderFunc) BindGesture(h GestureHandler) func() {
	return f(h)
}

// gestureScope holds the listeners bound while Scratching.
type gestureScope struct {
	release func()
}

func (g *gestureScope) acquire(b EventBinder, h GestureHandler) {
	g.close()
	if b == nil {
		return
	}
	g.release = b.BindGesture(h)
}

// close releases the listeners once; further calls are no-ops.
func (g *gestureScope) close() {
	if g.release == nil {
		return
	}
	release := g.release
	g.release = nil
	release()
}

// tracker owns GestureState and the gesture's listener scope.
type tracker struct {
	state  GestureState
	origin PointerSample
	moves  int
	scope  gestureScope
}

// begin enters Scratching. It reports false when a gesture is already
// active, so duplicate downs are ignored.
func (t *tracker) begin(p PointerSample, b EventBinder, h GestureHandler) bool {
	if t.state == Scratching {
		return false
	}
	t.state = Scratching
	t.origin = p
	t.moves = 0
	t.scope.acquire(b, h)
	return true
}

// end returns to Idle and releases listeners. It reports whether a
// gesture was actually active.
func (t *tracker) end() bool {
	if t.state != Scratching {
		t.scope.close()
		return false
	}
	t.state = Idle
	t.scope.close()
	return true
}
