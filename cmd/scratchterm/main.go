// Command scratchterm is a scratch card in the terminal. Drag with the
// left mouse button to scratch; r deals a new card, q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/preview"
	"github.com/gogpu/scratchcard/internal/promo"
)

const frameInterval = 16 * time.Millisecond

type app struct {
	screen  tcell.Screen
	host    *host
	sound   *sound
	content preview.Content
	frame   frame
}

func newApp(screen tcell.Screen, h *host, snd *sound, content preview.Content) *app {
	a := &app{screen: screen, host: h, sound: snd, content: content}
	h.onReveal = a.sound.playChime
	return a
}

func (a *app) run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	dirty := true
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.host.handle(ev) {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				a.screen.Sync()
			}
			dirty = true

		case <-ticker.C:
			a.host.card.Update()
			changed, err := a.host.render(&a.frame, a.content)
			if err != nil {
				return err
			}
			if changed || dirty {
				draw(a.screen, a.host, &a.frame)
				dirty = false
			}
		}
	}
}

func (a *app) cleanup() {
	a.sound.close()
	_ = a.host.card.Close()
	a.screen.Fini()
}

func main() {
	preset := flag.String("preset", "promo", "card preset: promo or gift")
	lang := flag.String("lang", "", "message language (default from $LANG)")
	seed := flag.Uint64("seed", 0, "prize draw seed (0 picks one)")
	mute := flag.Bool("mute", false, "no sound")
	logPath := flag.String("log", "", "write engine logs to this file")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // user-provided log path
		if err != nil {
			log.Fatalf("scratchterm: %v", err)
		}
		defer func() { _ = f.Close() }()
		scratchcard.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := play(*preset, *lang, *seed, *mute); err != nil {
		log.Fatalf("scratchterm: %v", err)
	}
}

func play(preset, lang string, seed uint64, mute bool) error {
	cfg, content, err := deal(preset)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	printer := promo.Printer(promo.Match(lang, os.Getenv("LANG")))
	h, err := newHost(cfg, printer, seed)
	if err != nil {
		return err
	}

	snd := newSound()
	if !mute {
		if err := snd.init(); err != nil {
			slog.Warn("audio unavailable", "err", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		snd.close()
		_ = h.card.Close()
		return err
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.EnableFocus()
	screen.HideCursor()
	h.resize(screen.Size())

	a := newApp(screen, h, snd, content)
	defer a.cleanup()
	return a.run()
}

// deal returns the card config and what it hides for a preset.
func deal(preset string) (scratchcard.Config, preview.Content, error) {
	switch preset {
	case "promo":
		cfg := promo.Card()
		return cfg, preview.Content{Label: cfg.Content.Label}, nil
	case "gift":
		cfg := promo.GiftCard()
		content := preview.Content{Label: cfg.Content.Label}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if img, err := (scratchcard.DefaultTextureLoader{}).Load(ctx, cfg.Content.Image); err == nil {
			content.Image = img
		} else {
			slog.Warn("gift card image unavailable", "err", err)
		}
		return cfg, content, nil
	default:
		return scratchcard.Config{}, preview.Content{}, fmt.Errorf("unknown preset %q (want promo or gift)", preset)
	}
}
