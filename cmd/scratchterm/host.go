package main

import (
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/message"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/promo"
)

// statusRows is the number of text rows under the card.
const statusRows = 3

// maxCardColumns keeps the card readable on wide terminals.
const maxCardColumns = 64

// layout places the card on the terminal grid. A cell is one column wide
// and two half-block pixels tall, so viewport units are columns
// horizontally and half rows vertically.
type layout struct {
	x, y          int // top-left cell
	width, height int // in cells
}

func (l layout) rect() scratchcard.Rect {
	return scratchcard.Rect{
		X:      float64(l.x),
		Y:      float64(l.y * 2),
		Width:  float64(l.width),
		Height: float64(l.height * 2),
	}
}

func (l layout) contains(col, row int) bool {
	return col >= l.x && col < l.x+l.width && row >= l.y && row < l.y+l.height
}

// fit centres a square card on a w x h terminal, leaving room for status.
func fit(w, h int) layout {
	cols := min(w-2, maxCardColumns, (h-statusRows-1)*2)
	cols = max(cols, 2) &^ 1
	rows := cols / 2
	return layout{
		x:      (w - cols) / 2,
		y:      max((h-rows-statusRows)/2, 0),
		width:  cols,
		height: rows,
	}
}

// cellSample maps a terminal cell to the centre of its two half blocks.
func cellSample(col, row int) scratchcard.MouseEvent {
	return scratchcard.MouseEvent{ClientX: float64(col) + 0.5, ClientY: float64(row*2) + 1}
}

// host routes terminal events into a card and keeps the round's result.
type host struct {
	card    *scratchcard.Card
	round   *promo.Round
	layout  layout
	printer *message.Printer

	// gesture is set by the card while a gesture is active and receives
	// every mouse event, wherever it lands.
	gesture scratchcard.GestureHandler
	pressed bool
	binds   int

	onReveal func()
}

func newHost(cfg scratchcard.Config, printer *message.Printer, seed uint64, opts ...scratchcard.Option) (*host, error) {
	round, err := promo.NewRound(cfg, rand.New(rand.NewPCG(seed, seed+1)))
	if err != nil {
		return nil, err
	}
	h := &host{round: round, printer: printer}
	opts = append(opts,
		scratchcard.WithPlacement(scratchcard.PlacementFunc(func() scratchcard.Rect { return h.layout.rect() })),
		scratchcard.WithEventBinder(h),
		scratchcard.WithOnProgress(round.Progress),
		scratchcard.WithOnComplete(h.complete),
	)
	h.card, err = scratchcard.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// BindGesture implements scratchcard.EventBinder.
func (h *host) BindGesture(g scratchcard.GestureHandler) func() {
	h.gesture = g
	h.binds++
	return func() { h.gesture = nil }
}

func (h *host) complete(c scratchcard.Completion) {
	h.round.Reveal(c)
	if h.onReveal != nil {
		h.onReveal()
	}
}

// reset starts a new round on a fresh surface.
func (h *host) reset() error {
	h.round.Reset()
	h.pressed = false
	return h.card.Reset()
}

func (h *host) resize(w, hgt int) {
	h.layout = fit(w, hgt)
}

// handle processes one event and reports whether the program should keep
// running.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			_ = h.reset()
		}

	case *tcell.EventMouse:
		h.mouse(ev)

	case *tcell.EventFocus:
		if !ev.Focused && h.gesture != nil {
			h.pressed = false
			h.gesture.PointerCancel()
		}

	case *tcell.EventResize:
		w, hgt := ev.Size()
		h.resize(w, hgt)
	}
	return true
}

// mouse turns tcell's button snapshots into down/move/up transitions.
func (h *host) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	sample := cellSample(col, row)

	switch {
	case down && !h.pressed:
		h.pressed = true
		if h.layout.contains(col, row) {
			h.card.PointerDown(sample)
		}
	case down && h.gesture != nil:
		h.gesture.PointerMove(sample)
	case !down && h.pressed:
		h.pressed = false
		if h.gesture != nil {
			h.gesture.PointerUp()
		}
	}
}

// status returns the text rows shown under the card.
func (h *host) status() [statusRows]string {
	var s [statusRows]string
	copy(s[:], h.round.Status(h.printer))
	if h.round.Revealed {
		s[2] += "  [r] " + h.printer.Sprintf(promo.MsgPlayAgain) + "  [q]"
	}
	return s
}
