package scratchcard

import (
	"context"
	"errors"
	"io"
	"math"
)

// ErrClosed is returned by operations on a closed Card that would need a
// new surface.
var ErrClosed = errors.New("scratchcard: card is closed")

// VisualState is what the host should show.
type VisualState uint8

const (
	// StateCovered: the cover is intact or partly scratched, no gesture active.
	StateCovered VisualState = iota

	// StateScratching: a gesture is in progress.
	StateScratching

	// StateRevealed: the card completed; the cover is inert and may be fading.
	StateRevealed
)

// String returns the state name.
func (v VisualState) String() string {
	switch v {
	case StateCovered:
		return "covered"
	case StateScratching:
		return "scratching"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Cursor is the pointer cursor a host should show over the surface.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

// Hints tells the host how to present the surface right now.
type Hints struct {
	// Interactive is false once the card completed; the host should stop
	// routing pointer events to the surface.
	Interactive bool

	// SuppressDefaultGestures asks the host to disable scrolling, callout
	// menus and text selection for the surface region.
	SuppressDefaultGestures bool

	Cursor Cursor

	// Opacity of the cover in [0, 1].
	Opacity float64
}

// Card is one scratch card: a surface, the gesture tracker driving it and
// the completion gate watching it.
//
// A Card is not safe for concurrent use. All methods must be called from
// the host's event goroutine; the only background work, texture loading,
// hands its result back through Update, the pointer methods or WaitTexture.
type Card struct {
	cfg  Config
	opts options

	surface *Surface
	tracker tracker
	gate    gate
	texture *textureLoad
	closed  bool

	sample  func(*Surface, *Zone) (float64, int)
	samples int
}

var (
	_ GestureHandler = (*Card)(nil)
	_ io.Closer      = (*Card)(nil)
)

// New validates cfg and returns a card with a freshly painted surface.
// A configured texture starts loading in the background.
func New(cfg Config, opts ...Option) (*Card, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Card{
		cfg:    cloneConfig(cfg),
		opts:   o,
		sample: coverage,
	}
	c.mount()
	return c, nil
}

// mount replaces the surface and resets all progress.
func (c *Card) mount() {
	c.tracker.end()
	c.dropTexture()
	c.surface.release()
	c.surface = newSurface(c.cfg, c.opts.dpr)
	c.gate = gate{}
	if src := c.cfg.Cover.Texture; src != "" {
		c.texture = startTextureLoad(c.opts.loader, src)
	}
}

// Reconfigure applies cfg. Size or cover changes replace the surface and
// reset progress; threshold, brush, zone and fade changes apply in place.
func (c *Card) Reconfigure(cfg Config) error {
	if c == nil || c.closed {
		return ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	old := c.cfg
	c.cfg = cloneConfig(cfg)
	if c.surface == nil || !sameSurface(old, c.cfg) {
		c.mount()
	}
	return nil
}

// Reset discards all progress and paints a new surface with the current
// config, as for a new round.
func (c *Card) Reset() error {
	if c == nil || c.closed {
		return ErrClosed
	}
	c.mount()
	return nil
}

// Close ends any gesture, abandons a pending texture load and drops the
// surface. Every other method becomes a no-op.
func (c *Card) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.tracker.end()
	c.dropTexture()
	c.surface.release()
	c.surface = nil
	c.closed = true
	return nil
}

// Config returns a copy of the active configuration.
func (c *Card) Config() Config {
	if c == nil {
		return Config{}
	}
	return cloneConfig(c.cfg)
}

// Surface returns the current surface, or nil once closed.
func (c *Card) Surface() *Surface {
	if c == nil {
		return nil
	}
	return c.surface
}

// Percentage returns the last sampled coverage.
func (c *Card) Percentage() float64 {
	if c == nil {
		return 0
	}
	return c.gate.percentage
}

// Completed reports whether the current surface has been revealed.
func (c *Card) Completed() bool {
	return c != nil && c.gate.completed
}

// Gesture returns the tracker state.
func (c *Card) Gesture() GestureState {
	if c == nil {
		return Idle
	}
	return c.tracker.state
}

// State returns the visual state.
func (c *Card) State() VisualState {
	switch {
	case c == nil:
		return StateCovered
	case c.gate.completed:
		return StateRevealed
	case c.tracker.state == Scratching:
		return StateScratching
	default:
		return StateCovered
	}
}

// Opacity returns the cover opacity at the card clock's current time.
func (c *Card) Opacity() float64 {
	if c == nil {
		return 1
	}
	return c.gate.opacity(c.cfg.FadeOnComplete, c.opts.now())
}

// Hints returns presentation hints for the host.
func (c *Card) Hints() Hints {
	h := Hints{Opacity: c.Opacity()}
	if c == nil || c.surface == nil || c.gate.completed {
		return h
	}
	h.Interactive = true
	h.SuppressDefaultGestures = true
	h.Cursor = CursorGrab
	if c.tracker.state == Scratching {
		h.Cursor = CursorGrabbing
	}
	return h
}

// Update applies a texture that finished loading. Hosts with a frame loop
// call it once per frame; pointer methods call it too.
func (c *Card) Update() {
	if c == nil || c.texture == nil {
		return
	}
	select {
	case res := <-c.texture.done:
		c.finishTexture(res)
	default:
	}
}

// WaitTexture blocks until a pending texture load settles and applies it.
// It returns nil when nothing is pending. A failed load is not an error:
// the flat cover stays.
func (c *Card) WaitTexture(ctx context.Context) error {
	if c == nil || c.texture == nil {
		return nil
	}
	select {
	case res := <-c.texture.done:
		c.finishTexture(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Card) finishTexture(res textureResult) {
	c.dropTexture()
	if res.err != nil {
		Logger().Warn("scratchcard: texture unavailable, keeping flat cover",
			"source", res.source, "err", res.err)
		return
	}
	if c.gate.completed {
		return
	}
	c.surface.applyTexture(res.img)
	Logger().Debug("scratchcard: texture applied", "id", c.surface.ID(), "source", res.source)
}

func (c *Card) dropTexture() {
	if c.texture == nil {
		return
	}
	c.texture.cancel()
	c.texture = nil
}

// PointerDown starts a gesture and erases at the pointer. It reports
// whether the event was consumed; hosts suppress the platform default
// when it was.
func (c *Card) PointerDown(in PointerInput) bool {
	if c == nil || in == nil {
		return false
	}
	c.Update()
	if c.surface == nil || c.gate.completed {
		return false
	}
	p, ok := in.Sample()
	if !ok {
		return false
	}
	if !c.tracker.begin(p, c.opts.binder, c) {
		return false
	}
	Logger().Debug("scratchcard: gesture started", "id", c.surface.ID(), "x", p.X, "y", p.Y)
	c.strokeAt(p)
	return true
}

// PointerMove erases at the pointer while a gesture is active.
func (c *Card) PointerMove(in PointerInput) bool {
	if c == nil || in == nil {
		return false
	}
	c.Update()
	if c.surface == nil || c.gate.completed || c.tracker.state != Scratching {
		return false
	}
	p, ok := in.Sample()
	if !ok {
		return false
	}
	c.tracker.moves++
	c.strokeAt(p)
	return true
}

// PointerUp ends the gesture and samples coverage.
func (c *Card) PointerUp() { c.release("up") }

// PointerLeave ends the gesture when the pointer leaves the window.
func (c *Card) PointerLeave() { c.release("leave") }

// PointerCancel ends the gesture when the platform cancels it.
func (c *Card) PointerCancel() { c.release("cancel") }

func (c *Card) release(reason string) {
	if c == nil {
		return
	}
	c.Update()
	moves := c.tracker.moves
	if !c.tracker.end() {
		return
	}
	Logger().Debug("scratchcard: gesture ended", "id", c.surface.ID(), "reason", reason, "moves", moves)
	c.settle()
}

// strokeAt maps a viewport sample into the surface and erases one disc.
func (c *Card) strokeAt(p PointerSample) {
	x, y, ok := toSurface(p, c.screenRect(), c.surface)
	if !ok {
		return
	}
	c.surface.erase(x, y, c.cfg.BrushSize)
}

// screenRect asks the placement for the current on-screen rectangle.
func (c *Card) screenRect() Rect {
	if c.opts.placement != nil {
		return c.opts.placement.ScreenRect()
	}
	return Rect{Width: float64(c.cfg.Width), Height: float64(c.cfg.Height)}
}

// settle is the sampling pass run when a gesture ends.
func (c *Card) settle() {
	if c.surface == nil || c.gate.completed || c.tracker.state == Scratching {
		return
	}
	pct, n := c.sample(c.surface, c.cfg.CheckZone)
	c.samples++

	finish := c.cfg.FinishPercent
	if n == 0 {
		finish = math.Inf(1)
	}
	revealed := c.gate.record(pct, finish, c.opts.now())

	if c.opts.onProgress != nil {
		c.opts.onProgress(pct)
	}
	if !revealed {
		return
	}
	Logger().Info("scratchcard: revealed", "id", c.surface.ID(), "percentage", pct)
	if c.opts.onComplete != nil {
		c.opts.onComplete(Completion{Percentage: pct, Surface: c.surface})
	}
}

func cloneConfig(cfg Config) Config {
	if cfg.CheckZone != nil {
		z := *cfg.CheckZone
		cfg.CheckZone = &z
	}
	return cfg
}
