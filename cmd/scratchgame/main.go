// Command scratchgame opens a window with a scratch card. Scratch with the
// mouse or a finger; R deals a new card once it is revealed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/preview"
	"github.com/gogpu/scratchcard/internal/promo"
)

func main() {
	gift := flag.Bool("gift", false, "play the gift card instead of the promo card")
	lang := flag.String("lang", "", "message language (default from $LANG)")
	verbose := flag.Bool("v", false, "log engine events to stderr")
	flag.Parse()

	if *verbose {
		scratchcard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := promo.Card()
	if *gift {
		cfg = promo.GiftCard()
	}
	content := preview.Content{Label: cfg.Content.Label}
	if src := cfg.Content.Image; src != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		img, err := (scratchcard.DefaultTextureLoader{}).Load(ctx, src)
		cancel()
		if err != nil {
			slog.Warn("content image unavailable", "source", src, "err", err)
		} else {
			content.Image = img
		}
	}

	round, err := promo.NewRound(cfg, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err != nil {
		log.Fatal(err)
	}
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil && m.DeviceScaleFactor() > 0 {
		dpr = m.DeviceScaleFactor()
	}
	g, err := newGame(cfg, content, round, promo.Printer(promo.Match(*lang, os.Getenv("LANG"))), dpr)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = g.card.Close()
	}()

	ebiten.SetWindowSize(cfg.Width+120, cfg.Height+160)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("scratchcard")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
