// Package scratchcard implements the interaction engine of a scratch card:
// an opaque cover that the user erases with a pointer until enough of it is
// gone, at which point a completion event fires exactly once.
//
// # Overview
//
// A Card owns three pieces:
//   - a Surface, the erasable raster (a gg.Pixmap sized to the layout size
//     times the device pixel ratio), painted with a cover colour and an
//     optional texture, then switched to erase mode;
//   - a gesture tracker that turns mouse and touch input into PointerSample
//     values, maps them into the surface and erases a disc per event;
//   - a completion gate that samples coverage when a gesture ends and
//     latches once the configured threshold is reached.
//
// # Quick Start
//
//	cfg := scratchcard.DefaultConfig()
//	cfg.Width, cfg.Height = 280, 280
//	cfg.FinishPercent = 40
//	cfg.BrushSize = 30
//
//	card, err := scratchcard.New(cfg,
//	    scratchcard.WithOnComplete(func(c scratchcard.Completion) {
//	        fmt.Printf("revealed at %.1f%%\n", c.Percentage)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer card.Close()
//
//	card.PointerDown(scratchcard.MouseEvent{ClientX: 140, ClientY: 140})
//	card.PointerMove(scratchcard.MouseEvent{ClientX: 150, ClientY: 140})
//	card.PointerUp()
//
// # Threading
//
// A Card is driven from a single goroutine, the host's event loop. Texture
// loading runs in the background and is applied on that goroutine by
// Update, WaitTexture or the next pointer event.
//
// # Coordinate System
//
// Pointer samples are viewport coordinates. The host's Placement reports
// the surface's on-screen rectangle on every event; samples are mapped into
// layout units relative to the surface's top-left corner. Coverage zones
// and brush sizes are layout units too.
package scratchcard
