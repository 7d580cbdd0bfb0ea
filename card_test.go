package scratchcard

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

// drag sends a down at the first point, a move for each following point,
// then an up.
func drag(c *Card, pts ...PointerSample) {
	if len(pts) == 0 {
		return
	}
	c.PointerDown(MouseEvent{ClientX: pts[0].X, ClientY: pts[0].Y})
	for _, p := range pts[1:] {
		c.PointerMove(MouseEvent{ClientX: p.X, ClientY: p.Y})
	}
	c.PointerUp()
}

// rows returns a boustrophedon path covering [x0,x1]x[y0,y1] every step units.
func rows(x0, y0, x1, y1, step float64) []PointerSample {
	var pts []PointerSample
	for y := y0; y <= y1; y += step {
		for x := x0; x <= x1; x += step {
			pts = append(pts, PointerSample{X: x, Y: y})
		}
	}
	return pts
}

type completions struct {
	got []Completion
}

func (c *completions) record(v Completion) { c.got = append(c.got, v) }

func newTestCard(t *testing.T, cfg Config, opts ...Option) (*Card, *completions) {
	t.Helper()
	done := &completions{}
	opts = append([]Option{WithOnComplete(done.record)}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, done
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BrushSize = -1
	if _, err := New(cfg); !errors.Is(err, ErrInvalidBrushSize) {
		t.Errorf("New() error = %v, want ErrInvalidBrushSize", err)
	}
}

func TestCardScenarioReveal(t *testing.T) {
	c, done := newTestCard(t, testConfig(280, 280, 40, 30))

	drag(c, rows(0, 0, 280, 140, 20)...)

	if len(done.got) != 1 {
		t.Fatalf("completions = %d, want 1", len(done.got))
	}
	got := done.got[0]
	if got.Percentage < 40 || got.Percentage > 100 {
		t.Errorf("Percentage = %v, want in [40, 100]", got.Percentage)
	}
	if got.Surface != c.Surface() {
		t.Error("Completion.Surface is not the card's surface")
	}
	if !c.Completed() || c.State() != StateRevealed {
		t.Errorf("Completed() = %v, State() = %v", c.Completed(), c.State())
	}

	// More gestures never fire again or touch the raster.
	v := c.Surface().Version()
	drag(c, rows(0, 150, 280, 280, 20)...)
	drag(c, PointerSample{X: 200, Y: 250})
	if len(done.got) != 1 {
		t.Errorf("completions after extra gestures = %d, want 1", len(done.got))
	}
	if c.Surface().Version() != v {
		t.Error("surface mutated after completion")
	}
	if c.Percentage() != got.Percentage {
		t.Errorf("Percentage() = %v, want %v", c.Percentage(), got.Percentage)
	}
}

func TestCardScenarioTenPercent(t *testing.T) {
	c, done := newTestCard(t, testConfig(280, 280, 40, 30))

	var pts []PointerSample
	for y := 0.0; y <= 280; y += 10 {
		pts = append(pts, PointerSample{X: 0, Y: y})
	}
	drag(c, pts...)

	if len(done.got) != 0 {
		t.Fatalf("completions = %d, want 0", len(done.got))
	}
	if p := c.Percentage(); p < 7 || p > 13 {
		t.Errorf("Percentage() = %v, want ~10", p)
	}
	if c.Completed() {
		t.Error("Completed() = true")
	}
}

func TestCardTwoTapsSamePoint(t *testing.T) {
	// One tap clears ~3.6% of a 280x280 surface with a 30 brush.
	for _, finish := range []float64{0, 3, 50} {
		c, done := newTestCard(t, testConfig(280, 280, finish, 30))

		var progress []float64
		c.opts.onProgress = func(p float64) { progress = append(progress, p) }

		drag(c, PointerSample{X: 140, Y: 140})
		drag(c, PointerSample{X: 140, Y: 140})

		want := 1
		if finish == 50 {
			want = 0
		}
		if len(done.got) != want {
			t.Errorf("finish %v: completions = %d, want %d", finish, len(done.got), want)
		}
		if want == 0 {
			// Anti-aliased edge pixels lose a little more alpha on the
			// second stamp, so the repeat sample may creep up slightly.
			if len(progress) != 2 || progress[1] < progress[0] || progress[1]-progress[0] >= 0.5 {
				t.Fatalf("finish %v: progress = %v, want a second sample within 0.5 of the first", finish, progress)
			}
			if progress[0] < 3 || progress[0] > 4.2 {
				t.Errorf("finish %v: tap coverage = %v, want ~3.6", finish, progress[0])
			}
		} else if len(progress) != 1 {
			t.Errorf("finish %v: progress samples = %d, want 1", finish, len(progress))
		}
	}
}

func TestCardNoSamplingWhileScratching(t *testing.T) {
	c, _ := newTestCard(t, testConfig(100, 100, 100, 10))
	calls := 0
	c.sample = func(s *Surface, z *Zone) (float64, int) {
		calls++
		if c.Gesture() == Scratching {
			t.Error("sampler invoked while scratching")
		}
		return coverage(s, z)
	}

	c.PointerDown(MouseEvent{ClientX: 10, ClientY: 10})
	for i := 0; i < 50; i++ {
		c.PointerMove(MouseEvent{ClientX: float64(i * 2), ClientY: 10})
	}
	if calls != 0 {
		t.Fatalf("sampler called %d times during gesture, want 0", calls)
	}

	// A duplicate down neither samples nor restarts.
	if c.PointerDown(MouseEvent{ClientX: 50, ClientY: 50}) {
		t.Error("duplicate PointerDown consumed")
	}
	if calls != 0 {
		t.Fatalf("sampler called on duplicate down")
	}

	c.PointerUp()
	if calls != 1 {
		t.Errorf("sampler called %d times after up, want 1", calls)
	}
	c.PointerUp()
	c.PointerLeave()
	c.PointerCancel()
	if calls != 1 {
		t.Errorf("sampler called %d times after stray releases, want 1", calls)
	}
}

func TestCardMoveWithoutDown(t *testing.T) {
	c, _ := newTestCard(t, testConfig(100, 100, 50, 10))
	v := c.Surface().Version()
	if c.PointerMove(MouseEvent{ClientX: 50, ClientY: 50}) {
		t.Error("PointerMove consumed while idle")
	}
	if c.Surface().Version() != v {
		t.Error("idle move erased")
	}
}

func TestCardReleaseReasons(t *testing.T) {
	for _, tt := range []struct {
		name    string
		release func(*Card)
	}{
		{"up", (*Card).PointerUp},
		{"leave", (*Card).PointerLeave},
		{"cancel", (*Card).PointerCancel},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b := &countingBinder{}
			c, _ := newTestCard(t, testConfig(100, 100, 50, 10), WithEventBinder(b))
			var progress int
			c.opts.onProgress = func(float64) { progress++ }

			c.PointerDown(MouseEvent{ClientX: 50, ClientY: 50})
			if !b.active() || b.handler != GestureHandler(c) {
				t.Fatal("listeners not bound on down")
			}
			tt.release(c)
			if b.active() || b.released != 1 {
				t.Errorf("bound=%d released=%d, want one release", b.bound, b.released)
			}
			if c.Gesture() != Idle {
				t.Errorf("Gesture() = %v, want idle", c.Gesture())
			}
			if progress != 1 {
				t.Errorf("samples = %d, want 1", progress)
			}
		})
	}
}

func TestCardBinderRoutesGlobalEvents(t *testing.T) {
	b := &countingBinder{}
	c, done := newTestCard(t, testConfig(100, 100, 90, 10), WithEventBinder(b))

	c.PointerDown(MouseEvent{ClientX: 0, ClientY: 0})
	for _, p := range rows(0, 0, 100, 100, 10)[1:] {
		b.handler.PointerMove(MouseEvent{ClientX: p.X, ClientY: p.Y})
	}
	b.handler.PointerUp()

	if len(done.got) != 1 {
		t.Errorf("completions = %d, want 1", len(done.got))
	}
	if b.active() {
		t.Error("listeners still bound after up")
	}
	if c.PointerDown(MouseEvent{ClientX: 10, ClientY: 10}) {
		t.Error("PointerDown consumed after completion")
	}
	if b.bound != 1 {
		t.Errorf("bound = %d after completion, want 1", b.bound)
	}
}

func TestCardCloseReleasesListeners(t *testing.T) {
	b := &countingBinder{}
	c, done := newTestCard(t, testConfig(100, 100, 0, 10), WithEventBinder(b))

	c.PointerDown(MouseEvent{ClientX: 50, ClientY: 50})
	stamp := c.Surface().stamp
	if stamp == nil {
		t.Fatal("press did not stamp the surface")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if stamp.dc != nil {
		t.Error("brush context still open after Close")
	}
	if b.released != 1 {
		t.Errorf("released = %d, want 1", b.released)
	}
	c.PointerUp()
	if len(done.got) != 0 {
		t.Error("completion fired after Close")
	}
	if c.Surface() != nil {
		t.Error("Surface() != nil after Close")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := c.Reset(); !errors.Is(err, ErrClosed) {
		t.Errorf("Reset() = %v, want ErrClosed", err)
	}
	if err := c.Reconfigure(DefaultConfig()); !errors.Is(err, ErrClosed) {
		t.Errorf("Reconfigure() = %v, want ErrClosed", err)
	}
	if c.PointerDown(MouseEvent{}) {
		t.Error("PointerDown consumed after Close")
	}
	if c.Hints().Interactive {
		t.Error("Hints().Interactive after Close")
	}
}

func TestCardPlacementPerEvent(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	calls := 0
	place := PlacementFunc(func() Rect {
		calls++
		return rect
	})
	c, _ := newTestCard(t, testConfig(100, 100, 100, 5), WithPlacement(place))

	c.PointerDown(MouseEvent{ClientX: 20, ClientY: 20})
	// The page scrolled by 40 between events.
	rect.Y = -40
	c.PointerMove(MouseEvent{ClientX: 20, ClientY: 20})
	c.PointerUp()

	if calls != 2 {
		t.Errorf("placement queried %d times, want 2", calls)
	}
	s := c.Surface()
	if a := s.AlphaAt(20, 20); a >= ClearedAlpha {
		t.Errorf("alpha at first stroke = %d, want cleared", a)
	}
	if a := s.AlphaAt(20, 60); a >= ClearedAlpha {
		t.Errorf("alpha at scrolled stroke = %d, want cleared", a)
	}
	if a := s.AlphaAt(20, 40); a != 255 {
		t.Errorf("alpha between strokes = %d, want 255", a)
	}
}

func TestCardDevicePixelRatio(t *testing.T) {
	c, _ := newTestCard(t, testConfig(100, 100, 100, 10),
		WithDevicePixelRatio(2),
		WithPlacement(Rect{X: 50, Y: 50, Width: 100, Height: 100}),
	)
	if w, h := c.Surface().PixelSize(); w != 200 || h != 200 {
		t.Fatalf("PixelSize() = %dx%d, want 200x200", w, h)
	}

	drag(c, PointerSample{X: 100, Y: 100})

	s := c.Surface()
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			d := math.Hypot(float64(x)+0.5-100, float64(y)+0.5-100)
			a := s.AlphaAt(x, y)
			if d <= 18.5 && a >= ClearedAlpha {
				t.Fatalf("pixel (%d,%d) at %.1f from centre alpha = %d, want cleared", x, y, d, a)
			}
			if d >= 21.5 && a != 255 {
				t.Fatalf("pixel (%d,%d) at %.1f from centre alpha = %d, want 255", x, y, d, a)
			}
		}
	}
}

func TestWithDevicePixelRatioInvalid(t *testing.T) {
	for _, dpr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c, _ := newTestCard(t, testConfig(10, 10, 50, 1), WithDevicePixelRatio(dpr))
		if got := c.Surface().DevicePixelRatio(); got != 1 {
			t.Errorf("WithDevicePixelRatio(%v): dpr = %v, want 1", dpr, got)
		}
	}
}

func TestCardTouchInput(t *testing.T) {
	c, _ := newTestCard(t, testConfig(100, 100, 100, 10))

	if c.PointerDown(TouchEvent{}) {
		t.Error("empty touch list consumed")
	}
	if c.Gesture() != Idle {
		t.Error("empty touch list started a gesture")
	}

	c.PointerDown(TouchEvent{Touches: []TouchPoint{{ClientX: 30, ClientY: 30}, {ClientX: 90, ClientY: 90}}})
	c.PointerUp()

	if a := c.Surface().AlphaAt(30, 30); a >= ClearedAlpha {
		t.Errorf("first touch not erased, alpha = %d", a)
	}
	if a := c.Surface().AlphaAt(90, 90); a != 255 {
		t.Errorf("second touch erased, alpha = %d", a)
	}
}

func TestCardCheckZone(t *testing.T) {
	cfg := testConfig(300, 300, 95, 10)
	cfg.CheckZone = &Zone{X: 0, Y: 0, Width: 100, Height: 100}

	c, done := newTestCard(t, cfg)
	drag(c, rows(180, 180, 300, 300, 10)...)
	if c.Percentage() != 0 || len(done.got) != 0 {
		t.Errorf("outside zone: Percentage() = %v, completions = %d", c.Percentage(), len(done.got))
	}

	drag(c, rows(0, 0, 100, 100, 10)...)
	if len(done.got) != 1 {
		t.Fatalf("inside zone: completions = %d, want 1", len(done.got))
	}
	if done.got[0].Percentage < 99.9 {
		t.Errorf("Percentage = %v, want ~100", done.got[0].Percentage)
	}
}

func TestCardDegenerateZoneNeverCompletes(t *testing.T) {
	cfg := testConfig(100, 100, 0, 10)
	cfg.CheckZone = &Zone{X: 10, Y: 10}

	c, done := newTestCard(t, cfg)
	drag(c, PointerSample{X: 10, Y: 10})
	if len(done.got) != 0 {
		t.Error("zero-area zone completed the card")
	}
	if c.Percentage() != 0 {
		t.Errorf("Percentage() = %v, want 0", c.Percentage())
	}
}

func TestCardHintsAndFade(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cfg := testConfig(50, 50, 1, 10)
	c, _ := newTestCard(t, cfg, WithClock(func() time.Time { return now }))

	h := c.Hints()
	if !h.Interactive || !h.SuppressDefaultGestures || h.Cursor != CursorGrab || h.Opacity != 1 {
		t.Errorf("idle Hints() = %+v", h)
	}

	c.PointerDown(MouseEvent{ClientX: 25, ClientY: 25})
	if c.State() != StateScratching || c.Hints().Cursor != CursorGrabbing {
		t.Errorf("scratching State() = %v, Cursor = %v", c.State(), c.Hints().Cursor)
	}
	c.PointerUp()

	h = c.Hints()
	if h.Interactive || h.SuppressDefaultGestures || h.Cursor != CursorDefault {
		t.Errorf("revealed Hints() = %+v", h)
	}
	if h.Opacity != 1 {
		t.Errorf("Opacity at completion = %v, want 1", h.Opacity)
	}
	now = now.Add(FadeDuration / 2)
	if o := c.Opacity(); math.Abs(o-0.5) > 1e-9 {
		t.Errorf("Opacity half way = %v, want 0.5", o)
	}
	now = now.Add(FadeDuration)
	if o := c.Opacity(); o != 0 {
		t.Errorf("Opacity after fade = %v, want 0", o)
	}
}

func TestCardNoFade(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cfg := testConfig(50, 50, 0, 10)
	cfg.FadeOnComplete = false
	c, _ := newTestCard(t, cfg, WithClock(func() time.Time { return now }))

	drag(c, PointerSample{X: 25, Y: 25})
	now = now.Add(time.Hour)
	if !c.Completed() || c.Opacity() != 1 {
		t.Errorf("Completed() = %v, Opacity() = %v, want true, 1", c.Completed(), c.Opacity())
	}
}

func TestVisualStateString(t *testing.T) {
	for s, want := range map[VisualState]string{
		StateCovered:    "covered",
		StateScratching: "scratching",
		StateRevealed:   "revealed",
		VisualState(42): "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("VisualState(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestCardReset(t *testing.T) {
	c, done := newTestCard(t, testConfig(50, 50, 0, 10))
	drag(c, PointerSample{X: 25, Y: 25})
	first := c.Surface()
	if len(done.got) != 1 {
		t.Fatalf("completions = %d, want 1", len(done.got))
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	if c.Surface() == first || c.Surface().ID() == first.ID() {
		t.Error("Reset() kept the old surface")
	}
	if c.Completed() || c.Percentage() != 0 || c.State() != StateCovered {
		t.Errorf("after Reset: Completed=%v Percentage=%v State=%v", c.Completed(), c.Percentage(), c.State())
	}
	if Coverage(c.Surface(), nil) != 0 {
		t.Error("new surface is not fully covered")
	}

	drag(c, PointerSample{X: 25, Y: 25})
	if len(done.got) != 2 {
		t.Errorf("completions after second round = %d, want 2", len(done.got))
	}
	if done.got[1].Surface != c.Surface() {
		t.Error("second completion does not carry the new surface")
	}
}

func TestCardReconfigure(t *testing.T) {
	b := &countingBinder{}
	c, _ := newTestCard(t, testConfig(100, 100, 90, 10), WithEventBinder(b))

	drag(c, PointerSample{X: 50, Y: 50})
	s := c.Surface()
	pct := c.Percentage()
	if pct == 0 {
		t.Fatal("tap did not register")
	}

	// Threshold and brush changes keep the surface and progress.
	cfg := c.Config()
	cfg.FinishPercent = 80
	cfg.BrushSize = 20
	if err := c.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure() = %v", err)
	}
	if c.Surface() != s || c.Percentage() != pct {
		t.Error("in-place reconfigure replaced the surface")
	}

	// A size change mid-gesture releases listeners and resets.
	c.PointerDown(MouseEvent{ClientX: 10, ClientY: 10})
	cfg.Width = 120
	if err := c.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure() = %v", err)
	}
	if c.Surface() == s {
		t.Error("size change kept the surface")
	}
	if c.Gesture() != Idle || b.active() {
		t.Errorf("Gesture() = %v, binder active = %v after remount", c.Gesture(), b.active())
	}
	if c.Percentage() != 0 {
		t.Errorf("Percentage() = %v after remount, want 0", c.Percentage())
	}
	if w, _ := c.Surface().Size(); w != 120 {
		t.Errorf("width = %d, want 120", w)
	}

	bad := cfg
	bad.Width = 0
	if err := c.Reconfigure(bad); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Reconfigure(bad) = %v, want ErrInvalidSize", err)
	}
	if c.Config().Width != 120 {
		t.Error("invalid Reconfigure changed the config")
	}
}

func TestCardConfigIsCopied(t *testing.T) {
	cfg := testConfig(100, 100, 50, 10)
	cfg.CheckZone = &Zone{Width: 10, Height: 10}
	c, _ := newTestCard(t, cfg)

	cfg.CheckZone.Width = 99
	if c.Config().CheckZone.Width != 10 {
		t.Error("card shares CheckZone with the caller")
	}
	got := c.Config()
	got.CheckZone.Width = 77
	if c.Config().CheckZone.Width != 10 {
		t.Error("Config() exposes the card's CheckZone")
	}
}

func solidImage(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestCardTextureFailureKeepsFlatCover(t *testing.T) {
	failing := TextureLoaderFunc(func(context.Context, string) (image.Image, error) {
		return nil, errors.New("404")
	})

	run := func(texture string, opts ...Option) (*Card, *completions) {
		cfg := testConfig(280, 280, 40, 30)
		cfg.Cover.Texture = texture
		c, done := newTestCard(t, cfg, opts...)
		if err := c.WaitTexture(context.Background()); err != nil {
			t.Fatalf("WaitTexture() = %v", err)
		}
		drag(c, rows(0, 0, 280, 140, 20)...)
		return c, done
	}

	plain, plainDone := run("")
	failed, failedDone := run("https://example.invalid/cover.png", WithTextureLoader(failing))

	want := plain.Surface().Image()
	if got := failed.Surface().Image().NRGBAAt(270, 270); got != want.NRGBAAt(270, 270) {
		t.Errorf("covered pixel = %v, want flat cover %v", got, want.NRGBAAt(270, 270))
	}
	if len(plainDone.got) != 1 || len(failedDone.got) != 1 {
		t.Fatalf("completions plain=%d failed=%d, want 1 each", len(plainDone.got), len(failedDone.got))
	}
	if plainDone.got[0].Percentage != failedDone.got[0].Percentage {
		t.Errorf("Percentage plain=%v failed=%v, want equal",
			plainDone.got[0].Percentage, failedDone.got[0].Percentage)
	}
}

func TestCardTextureApplied(t *testing.T) {
	release := make(chan struct{})
	loader := TextureLoaderFunc(func(ctx context.Context, _ string) (image.Image, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return solidImage(color.NRGBA{B: 255, A: 255}), nil
	})

	cfg := testConfig(60, 60, 100, 10)
	cfg.Cover.Texture = "blue.png"
	c, _ := newTestCard(t, cfg, WithTextureLoader(loader))

	// Scratch before the texture arrives.
	drag(c, PointerSample{X: 15, Y: 15})
	close(release)
	if err := c.WaitTexture(context.Background()); err != nil {
		t.Fatalf("WaitTexture() = %v", err)
	}

	img := c.Surface().Image()
	if got := img.NRGBAAt(45, 45); got.B < 250 || got.R > 5 || got.A != 255 {
		t.Errorf("covered pixel = %v, want textured blue", got)
	}
	if a := c.Surface().AlphaAt(15, 15); a >= ClearedAlpha {
		t.Errorf("scratched pixel alpha = %d after texture, want cleared", a)
	}
	if err := c.WaitTexture(context.Background()); err != nil {
		t.Errorf("WaitTexture() with nothing pending = %v", err)
	}
}

func TestCardTextureAfterCompletionIgnored(t *testing.T) {
	release := make(chan struct{})
	loader := TextureLoaderFunc(func(context.Context, string) (image.Image, error) {
		<-release
		return solidImage(color.NRGBA{R: 255, A: 255}), nil
	})

	cfg := testConfig(60, 60, 0, 10)
	cfg.Cover.Texture = "red.png"
	c, _ := newTestCard(t, cfg, WithTextureLoader(loader))

	drag(c, PointerSample{X: 30, Y: 30})
	if !c.Completed() {
		t.Fatal("card did not complete")
	}
	v := c.Surface().Version()
	close(release)
	if err := c.WaitTexture(context.Background()); err != nil {
		t.Fatalf("WaitTexture() = %v", err)
	}
	if c.Surface().Version() != v {
		t.Error("texture applied after completion")
	}
}

func TestCardStaleTextureDropped(t *testing.T) {
	loads := make(chan string, 2)
	loader := TextureLoaderFunc(func(ctx context.Context, source string) (image.Image, error) {
		loads <- source
		<-ctx.Done()
		return nil, ctx.Err()
	})

	cfg := testConfig(40, 40, 50, 5)
	cfg.Cover.Texture = "a.png"
	c, _ := newTestCard(t, cfg, WithTextureLoader(loader))
	<-loads

	cfg.Cover.Texture = "b.png"
	if err := c.Reconfigure(cfg); err != nil {
		t.Fatal(err)
	}
	if got := <-loads; got != "b.png" {
		t.Errorf("second load source = %q, want b.png", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.WaitTexture(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitTexture() = %v, want deadline exceeded while b.png is pending", err)
	}
}

func TestNilCard(t *testing.T) {
	var c *Card
	if c.PointerDown(MouseEvent{}) || c.PointerMove(MouseEvent{}) {
		t.Error("nil card consumed an event")
	}
	c.PointerUp()
	c.PointerLeave()
	c.PointerCancel()
	c.Update()
	if c.Completed() || c.Percentage() != 0 || c.Surface() != nil {
		t.Error("nil card reports state")
	}
	if c.Opacity() != 1 || c.State() != StateCovered || c.Gesture() != Idle {
		t.Error("nil card visual state")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := c.WaitTexture(context.Background()); err != nil {
		t.Errorf("WaitTexture() = %v", err)
	}
}
