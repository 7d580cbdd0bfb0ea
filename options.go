package scratchcard

import (
	"math"
	"time"
)

// Option configures a Card during creation.
//
// Example:
//
//	card, err := scratchcard.New(cfg,
//	    scratchcard.WithDevicePixelRatio(2),
//	    scratchcard.WithOnComplete(func(c scratchcard.Completion) {
//	        log.Printf("revealed at %.1f%%", c.Percentage)
//	    }),
//	)
type Option func(*options)

type options struct {
	dpr        float64
	placement  Placement
	binder     EventBinder
	loader     TextureLoader
	onComplete func(Completion)
	onProgress func(float64)
	now        func() time.Time
}

func defaultOptions() options {
	return options{
		dpr:    1,
		loader: DefaultTextureLoader{},
		now:    time.Now,
	}
}

// WithDevicePixelRatio sets the layout-to-pixel scale of the surface.
// Values that are not finite and positive fall back to 1.
func WithDevicePixelRatio(dpr float64) Option {
	return func(o *options) {
		if math.IsNaN(dpr) || math.IsInf(dpr, 0) || dpr <= 0 {
			dpr = 1
		}
		o.dpr = dpr
	}
}

// WithPlacement sets where the surface sits on screen. Without it pointer
// coordinates are taken as surface-local layout units.
func WithPlacement(p Placement) Option {
	return func(o *options) {
		o.placement = p
	}
}

// WithEventBinder routes window-level events to the card while a gesture
// is active. Hosts that already forward every event to the card can omit it.
func WithEventBinder(b EventBinder) Option {
	return func(o *options) {
		o.binder = b
	}
}

// WithTextureLoader replaces DefaultTextureLoader.
func WithTextureLoader(l TextureLoader) Option {
	return func(o *options) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithOnComplete sets the callback fired once per surface when the
// threshold is crossed.
func WithOnComplete(fn func(Completion)) Option {
	return func(o *options) {
		o.onComplete = fn
	}
}

// WithOnProgress sets a callback fired with every sampled percentage,
// for progress display.
func WithOnProgress(fn func(percentage float64)) Option {
	return func(o *options) {
		o.onProgress = fn
	}
}

// WithClock replaces time.Now for completion timestamps and the fade.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
