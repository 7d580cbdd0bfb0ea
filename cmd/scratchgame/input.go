package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/scratchcard"
)

// touch is one active touch in screen pixels.
type touch struct {
	id   ebiten.TouchID
	x, y float64
}

// snapshot is the pointer state of one tick.
type snapshot struct {
	mouseX, mouseY float64
	mouseDown      bool
	touches        []touch
	focused        bool
}

// poll reads the current ebiten input state for the touches in ids,
// appending them to touches[:0].
func poll(ids []ebiten.TouchID, touches []touch) snapshot {
	x, y := ebiten.CursorPosition()
	s := snapshot{
		mouseX:    float64(x),
		mouseY:    float64(y),
		mouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		focused:   ebiten.IsFocused(),
		touches:   touches[:0],
	}
	for _, id := range ids {
		tx, ty := ebiten.TouchPosition(id)
		s.touches = append(s.touches, touch{id: id, x: float64(tx), y: float64(ty)})
	}
	return s
}

const noTouch ebiten.TouchID = -1

// router turns per-tick input snapshots into card pointer calls. One
// gesture runs at a time: a touch that lands while the mouse is held, or
// the mouse pressed during a touch, is ignored.
type router struct {
	card   *scratchcard.Card
	bounds func() scratchcard.Rect

	gesture   scratchcard.GestureHandler
	mouseDown bool
	touchID   ebiten.TouchID
}

func newRouter(bounds func() scratchcard.Rect) *router {
	return &router{bounds: bounds, touchID: noTouch}
}

// BindGesture implements scratchcard.EventBinder.
func (r *router) BindGesture(g scratchcard.GestureHandler) func() {
	r.gesture = g
	return func() { r.gesture = nil }
}

func (r *router) inside(x, y float64) bool {
	b := r.bounds()
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

func (r *router) step(s snapshot) {
	if !s.focused {
		r.mouseDown = false
		r.touchID = noTouch
		if r.gesture != nil {
			r.gesture.PointerCancel()
		}
		return
	}
	r.stepTouch(s.touches)
	r.stepMouse(s)
}

func (r *router) stepTouch(touches []touch) {
	if r.touchID != noTouch {
		for _, t := range touches {
			if t.id != r.touchID {
				continue
			}
			if r.gesture != nil {
				r.gesture.PointerMove(touchEvent(t))
			}
			return
		}
		r.touchID = noTouch
		if r.gesture != nil {
			r.gesture.PointerUp()
		}
		return
	}
	if len(touches) == 0 || r.mouseDown {
		return
	}
	t := touches[0]
	r.touchID = t.id
	if r.inside(t.x, t.y) {
		r.card.PointerDown(touchEvent(t))
	}
}

func (r *router) stepMouse(s snapshot) {
	switch {
	case s.mouseDown && !r.mouseDown:
		r.mouseDown = true
		if r.touchID == noTouch && r.inside(s.mouseX, s.mouseY) {
			r.card.PointerDown(scratchcard.MouseEvent{ClientX: s.mouseX, ClientY: s.mouseY})
		}
	case s.mouseDown && r.touchID == noTouch && r.gesture != nil:
		r.gesture.PointerMove(scratchcard.MouseEvent{ClientX: s.mouseX, ClientY: s.mouseY})
	case !s.mouseDown && r.mouseDown:
		r.mouseDown = false
		if r.touchID == noTouch && r.gesture != nil {
			r.gesture.PointerUp()
		}
	}
}

func touchEvent(t touch) scratchcard.TouchEvent {
	return scratchcard.TouchEvent{Touches: []scratchcard.TouchPoint{
		{ID: int(t.id), ClientX: t.x, ClientY: t.y},
	}}
}
