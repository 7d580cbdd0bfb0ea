package scratchcard

// PointerSample is one pointer position in viewport coordinates.
// Every input modality is reduced to it once, at the input boundary.
type PointerSample struct {
	X, Y float64
}

// Sample implements PointerInput, so hosts that already unified their
// input can pass samples straight through.
func (p PointerSample) Sample() (PointerSample, bool) {
	return p, true
}

// PointerInput is an input event that can produce a PointerSample.
// ok is false when the event carries no usable position, such as a touch
// event whose touch list is empty.
type PointerInput interface {
	Sample() (p PointerSample, ok bool)
}

// MouseEvent is a mouse position in viewport coordinates.
type MouseEvent struct {
	ClientX, ClientY float64
}

// Sample implements PointerInput.
func (e MouseEvent) Sample() (PointerSample, bool) {
	return PointerSample{X: e.ClientX, Y: e.ClientY}, true
}

// TouchPoint is one active touch.
type TouchPoint struct {
	ID               int
	ClientX, ClientY float64
}

// TouchEvent lists the active touches in the order the platform reports them.
type TouchEvent struct {
	Touches []TouchPoint
}

// Sample implements PointerInput using the first active touch.
func (e TouchEvent) Sample() (PointerSample, bool) {
	if len(e.Touches) == 0 {
		return PointerSample{}, false
	}
	t := e.Touches[0]
	return PointerSample{X: t.ClientX, Y: t.ClientY}, true
}

// Rect is an on-screen rectangle in viewport coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ScreenRect implements Placement for a surface that never moves.
func (r Rect) ScreenRect() Rect { return r }

// Placement reports where the surface currently sits on screen.
// It is asked on every pointer event since scrolling and resizing move the
// surface between events.
type Placement interface {
	ScreenRect() Rect
}

// PlacementFunc adapts a function to Placement.
type PlacementFunc func() Rect

// ScreenRect implements Placement.
func (f PlacementFunc) ScreenRect() Rect { return f() }

// toSurface maps a viewport sample into the surface's logical space:
// subtract the on-screen origin, scale into buffer pixels, then divide by
// the device pixel ratio the buffer was scaled by.
func toSurface(p PointerSample, screen Rect, s *Surface) (x, y float64, ok bool) {
	if s == nil || screen.Width <= 0 || screen.Height <= 0 {
		return 0, 0, false
	}
	pw, ph := s.PixelSize()
	x = (p.X - screen.X) * (float64(pw) / screen.Width) / s.dpr
	y = (p.Y - screen.Y) * (float64(ph) / screen.Height) / s.dpr
	return x, y, true
}
