package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/scratchcard"
)

// A script drives a card with pointer events, one command per line or
// separated by ';'. Coordinates are viewport units. '#' starts a comment.
//
//	down X Y            pointer down
//	move X Y            pointer move
//	up | leave | cancel end the gesture
//	tap X Y             down + up
//	drag X0 Y0 X1 Y1 [STEP]
//	                    one gesture along a straight line, a sample every STEP (default 5)
//	fill X0 Y0 X1 Y1 STEP
//	                    one gesture sweeping the rectangle row by row
//	wait DURATION       advance the clock, e.g. wait 150ms
type step struct {
	op   string
	args []float64
	wait time.Duration
	line int
}

var arity = map[string][]int{
	"down":   {2},
	"move":   {2},
	"up":     {0},
	"leave":  {0},
	"cancel": {0},
	"tap":    {2},
	"drag":   {4, 5},
	"fill":   {5},
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		for _, cmd := range strings.Split(text, ";") {
			fields := strings.Fields(cmd)
			if len(fields) == 0 {
				continue
			}
			s, err := parseStep(fields, line)
			if err != nil {
				return nil, err
			}
			steps = append(steps, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseStep(fields []string, line int) (step, error) {
	s := step{op: strings.ToLower(fields[0]), line: line}
	if s.op == "wait" {
		if len(fields) != 2 {
			return s, fmt.Errorf("line %d: wait takes one duration", line)
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil || d < 0 {
			return s, fmt.Errorf("line %d: bad duration %q", line, fields[1])
		}
		s.wait = d
		return s, nil
	}

	want, ok := arity[s.op]
	if !ok {
		return s, fmt.Errorf("line %d: unknown command %q", line, fields[0])
	}
	n := len(fields) - 1
	valid := false
	for _, w := range want {
		valid = valid || n == w
	}
	if !valid {
		return s, fmt.Errorf("line %d: %s takes %v arguments, got %d", line, s.op, want, n)
	}
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return s, fmt.Errorf("line %d: %s: %w", line, s.op, err)
		}
		s.args = append(s.args, v)
	}
	if s.op == "fill" && s.args[4] <= 0 {
		return s, fmt.Errorf("line %d: fill step must be positive", line)
	}
	if s.op == "drag" && len(s.args) == 5 && s.args[4] <= 0 {
		return s, fmt.Errorf("line %d: drag step must be positive", line)
	}
	return s, nil
}

// clock is a manual time source for scripted runs.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func runScript(card *scratchcard.Card, clk *clock, steps []step) {
	mouse := func(x, y float64) scratchcard.MouseEvent {
		return scratchcard.MouseEvent{ClientX: x, ClientY: y}
	}
	for _, s := range steps {
		a := s.args
		switch s.op {
		case "down":
			card.PointerDown(mouse(a[0], a[1]))
		case "move":
			card.PointerMove(mouse(a[0], a[1]))
		case "up":
			card.PointerUp()
		case "leave":
			card.PointerLeave()
		case "cancel":
			card.PointerCancel()
		case "tap":
			card.PointerDown(mouse(a[0], a[1]))
			card.PointerUp()
		case "drag":
			every := 5.0
			if len(a) == 5 {
				every = a[4]
			}
			pts := segment(a[0], a[1], a[2], a[3], every)
			card.PointerDown(mouse(pts[0][0], pts[0][1]))
			for _, p := range pts[1:] {
				card.PointerMove(mouse(p[0], p[1]))
			}
			card.PointerUp()
		case "fill":
			card.PointerDown(mouse(a[0], a[1]))
			for y := a[1]; y <= a[3]; y += a[4] {
				for x := a[0]; x <= a[2]; x += a[4] {
					card.PointerMove(mouse(x, y))
				}
			}
			card.PointerUp()
		case "wait":
			clk.now = clk.now.Add(s.wait)
		}
	}
}

// segment samples the line from (x0, y0) to (x1, y1) every `every` units,
// both ends included.
func segment(x0, y0, x1, y1, every float64) [][2]float64 {
	dx, dy := x1-x0, y1-y0
	d := math.Hypot(dx, dy)
	n := int(d / every)
	pts := make([][2]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		t := 0.0
		if d > 0 {
			t = float64(i) * every / d
		}
		pts = append(pts, [2]float64{x0 + dx*t, y0 + dy*t})
	}
	if last := pts[len(pts)-1]; last[0] != x1 || last[1] != y1 {
		pts = append(pts, [2]float64{x1, y1})
	}
	return pts
}
