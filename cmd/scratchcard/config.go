package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/promo"
)

// fileConfig is the TOML card file. Absent keys keep the preset values.
//
//	preset = "promo"
//	finish_percent = 40
//	brush_size = 30
//	device_pixel_ratio = 2
//	script = "fill 0 0 280 140 20"
//
//	[cover]
//	color = "#FFD700"
//	texture = "https://example.com/foil.png"
//
//	[zone]
//	x = 40
//	y = 40
//	width = 200
//	height = 200
//
//	[content]
//	label = "WIN"
//	background = "#FACC15"
type fileConfig struct {
	Preset        string   `toml:"preset"`
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	FinishPercent *float64 `toml:"finish_percent"`
	BrushSize     *float64 `toml:"brush_size"`
	Fade          *bool    `toml:"fade_on_complete"`
	DPR           float64  `toml:"device_pixel_ratio"`
	Script        string   `toml:"script"`

	Cover struct {
		Color   string `toml:"color"`
		Texture string `toml:"texture"`
	} `toml:"cover"`

	Zone *struct {
		X      float64 `toml:"x"`
		Y      float64 `toml:"y"`
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"zone"`

	Content struct {
		Image      string `toml:"image"`
		Label      string `toml:"label"`
		Background string `toml:"background"`
	} `toml:"content"`
}

var errUnknownPreset = errors.New("unknown preset")

// settings is everything the command needs after flags and files merge.
type settings struct {
	card       scratchcard.Config
	dpr        float64
	script     string
	background string
}

func presetConfig(name string) (scratchcard.Config, error) {
	switch name {
	case "", "default":
		return scratchcard.DefaultConfig(), nil
	case "promo":
		return promo.Card(), nil
	case "gift":
		return promo.GiftCard(), nil
	default:
		return scratchcard.Config{}, fmt.Errorf("%w %q (want default, promo or gift)", errUnknownPreset, name)
	}
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fc, fmt.Errorf("card file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fc, fmt.Errorf("card file %s: unknown keys %v", path, undecoded)
	}
	return fc, nil
}

// apply merges the file over s.
func (fc fileConfig) apply(s *settings) {
	c := &s.card
	if fc.Width > 0 {
		c.Width = fc.Width
	}
	if fc.Height > 0 {
		c.Height = fc.Height
	}
	if fc.FinishPercent != nil {
		c.FinishPercent = *fc.FinishPercent
	}
	if fc.BrushSize != nil {
		c.BrushSize = *fc.BrushSize
	}
	if fc.Fade != nil {
		c.FadeOnComplete = *fc.Fade
	}
	if fc.Cover.Color != "" {
		c.Cover.Color = fc.Cover.Color
	}
	if fc.Cover.Texture != "" {
		c.Cover.Texture = fc.Cover.Texture
	}
	if z := fc.Zone; z != nil {
		c.CheckZone = &scratchcard.Zone{X: z.X, Y: z.Y, Width: z.Width, Height: z.Height}
	}
	if fc.Content.Image != "" {
		c.Content.Image = fc.Content.Image
	}
	if fc.Content.Label != "" {
		c.Content.Label = fc.Content.Label
	}
	if fc.Content.Background != "" {
		s.background = fc.Content.Background
	}
	if fc.DPR > 0 {
		s.dpr = fc.DPR
	}
	if fc.Script != "" {
		s.script = fc.Script
	}
}

// parseZone reads "x,y,w,h".
func parseZone(v string) (*scratchcard.Zone, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("zone %q: want x,y,width,height", v)
	}
	var f [4]float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", v, err)
		}
		f[i] = n
	}
	return &scratchcard.Zone{X: f[0], Y: f[1], Width: f[2], Height: f[3]}, nil
}

// resolve builds settings from a preset, an optional card file, and then
// every flag the user set explicitly, in that order.
func resolve(fs *flag.FlagSet) (settings, error) {
	get := func(name string) string { return fs.Lookup(name).Value.String() }

	var s settings
	s.dpr = 1

	preset := get("preset")
	var fc fileConfig
	if path := get("config"); path != "" {
		var err error
		if fc, err = loadFile(path); err != nil {
			return s, err
		}
		if preset == "" {
			preset = fc.Preset
		}
	}
	card, err := presetConfig(preset)
	if err != nil {
		return s, err
	}
	s.card = card
	fc.apply(&s)

	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		ferr = applyFlag(&s, f.Name, f.Value.String())
	})
	if ferr != nil {
		return s, ferr
	}
	if err := s.card.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func applyFlag(s *settings, name, v string) error {
	c := &s.card
	var err error
	switch name {
	case "width":
		c.Width, err = strconv.Atoi(v)
	case "height":
		c.Height, err = strconv.Atoi(v)
	case "finish":
		c.FinishPercent, err = strconv.ParseFloat(v, 64)
	case "brush":
		c.BrushSize, err = strconv.ParseFloat(v, 64)
	case "color":
		c.Cover.Color = v
	case "texture":
		c.Cover.Texture = v
	case "fade":
		c.FadeOnComplete, err = strconv.ParseBool(v)
	case "zone":
		c.CheckZone, err = parseZone(v)
	case "image":
		c.Content.Image = v
	case "label":
		c.Content.Label = v
	case "background":
		s.background = v
	case "dpr":
		s.dpr, err = strconv.ParseFloat(v, 64)
	case "script":
		s.script = v
	}
	if err != nil {
		return fmt.Errorf("-%s: %w", name, err)
	}
	return nil
}
