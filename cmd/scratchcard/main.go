// Command scratchcard plays a gesture script against a scratch card and
// writes the composed card as a PNG.
//
//	scratchcard -preset promo -script "fill 0 0 280 140 20" -out card.png
//	scratchcard -config card.toml -script-file gestures.txt -v
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/preview"
	"github.com/gogpu/scratchcard/internal/promo"
)

const textureTimeout = 15 * time.Second

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("scratchcard", flag.ContinueOnError)
	fs.String("preset", "", "start from a preset: default, promo or gift")
	fs.String("config", "", "TOML card file")
	fs.Int("width", scratchcard.DefaultWidth, "card width in layout units")
	fs.Int("height", scratchcard.DefaultHeight, "card height in layout units")
	fs.Float64("finish", scratchcard.DefaultFinishPercent, "percent cleared that reveals the card")
	fs.Float64("brush", scratchcard.DefaultBrushSize, "brush radius in layout units")
	fs.String("color", scratchcard.DefaultCoverColor, "cover colour")
	fs.String("texture", "", "cover texture path or URL")
	fs.Bool("fade", true, "fade the cover out after completion")
	fs.String("zone", "", "coverage zone x,y,width,height")
	fs.String("image", "", "content image path or URL")
	fs.String("label", "", "content label when there is no image")
	fs.String("background", "", "content background colour")
	fs.Float64("dpr", 1, "device pixel ratio")
	fs.String("script", "", "gesture script")
	fs.String("script-file", "", "read the gesture script from a file ('-' for stdin)")
	fs.String("out", "scratchcard.png", "output PNG")
	fs.String("lang", "", "message language (default from $LANG)")
	fs.Uint64("seed", 0, "prize draw seed (0 picks one)")
	fs.Bool("v", false, "log engine events to stderr")
	return fs
}

func main() {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if err := run(fs, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("scratchcard: %v", err)
	}
}

func run(fs *flag.FlagSet, stdin io.Reader, stdout io.Writer) error {
	get := func(name string) string { return fs.Lookup(name).Value.String() }

	if get("v") == "true" {
		scratchcard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := resolve(fs)
	if err != nil {
		return err
	}
	steps, err := loadScript(s.script, get("script-file"), stdin)
	if err != nil {
		return err
	}

	sd := seed(fs)
	round, err := promo.NewRound(s.card, rand.New(rand.NewPCG(sd, sd^0x9e3779b97f4a7c15)))
	if err != nil {
		return err
	}
	clk := &clock{now: time.Now()}
	card, err := scratchcard.New(s.card,
		scratchcard.WithDevicePixelRatio(s.dpr),
		scratchcard.WithClock(clk.Now),
		scratchcard.WithOnProgress(round.Progress),
		scratchcard.WithOnComplete(round.Reveal),
	)
	if err != nil {
		return err
	}
	defer func() {
		_ = card.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), textureTimeout)
	defer cancel()
	if err := card.WaitTexture(ctx); err != nil {
		slog.Warn("texture still loading, using flat cover", "err", err)
	}

	runScript(card, clk, steps)

	content := preview.Content{Label: s.card.Content.Label, Background: s.background}
	if src := s.card.Content.Image; src != "" {
		img, err := scratchcard.DefaultTextureLoader{}.Load(ctx, src)
		if err != nil {
			slog.Warn("content image unavailable", "source", src, "err", err)
		} else {
			content.Image = img
		}
	}
	img, err := preview.Render(card, content)
	if err != nil {
		return err
	}
	out := get("out")
	if err := writePNG(out, img); err != nil {
		return err
	}

	p := promo.Printer(promo.Match(get("lang"), os.Getenv("LANG")))
	report(stdout, p, round)
	fmt.Fprintf(stdout, "%s\n", out)
	return nil
}

func loadScript(inline, path string, stdin io.Reader) ([]step, error) {
	switch path {
	case "":
		return parseScript(strings.NewReader(inline))
	case "-":
		return parseScript(stdin)
	}
	f, err := os.Open(path) //nolint:gosec // user-provided script path
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return parseScript(f)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // user-provided output path
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("output: %w", err)
	}
	return f.Close()
}

func seed(fs *flag.FlagSet) uint64 {
	if v, ok := fs.Lookup("seed").Value.(flag.Getter); ok {
		if n, _ := v.Get().(uint64); n != 0 {
			return n
		}
	}
	return rand.Uint64()
}

// report prints progress and, once revealed, what the card was hiding.
func report(w io.Writer, p *message.Printer, round *promo.Round) {
	lines := round.Status(p)
	fmt.Fprintln(w, lines[0])
	if round.Revealed {
		fmt.Fprintln(w, p.Sprintf(promo.MsgRevealedAfter, round.Percentage))
	}
	for _, line := range lines[1:] {
		fmt.Fprintln(w, line)
	}
}
