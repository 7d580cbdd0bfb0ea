// Package promo holds the barber-shop promotion the hosts present around a
// scratch card: the prize catalog, the win/lose coin flip and the fr/en
// strings shown next to the card.
package promo

import (
	"fmt"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/reward"
)

// Card returns the card configuration used on the promo page.
func Card() scratchcard.Config {
	cfg := scratchcard.DefaultConfig()
	cfg.Width = 280
	cfg.Height = 280
	cfg.FinishPercent = 40
	cfg.BrushSize = 30
	cfg.Cover.Color = "#D1D5DB"
	cfg.Content.Label = "🎁"
	return cfg
}

// GiftCard returns the stand-alone gift card configuration: gold cover
// over a gift card image.
func GiftCard() scratchcard.Config {
	cfg := Card()
	cfg.Cover.Color = "#FFD700"
	cfg.Content = scratchcard.Content{
		Image: "https://assets.codepen.io/4175254/apple-gift-card.png",
		Label: "$50",
	}
	return cfg
}

// Prize is one reward of the promotion. Title and Description are message
// keys; render them through a Printer.
type Prize struct {
	ID          int
	Title       string
	Description string
	Emoji       string
	Color       string
	Probability float64
}

// Prizes is the catalog, from rarest to most common.
var Prizes = []Prize{
	{ID: 1, Title: "Free haircut", Description: "Your next haircut is on us!", Emoji: "✂️", Color: "#A855F7", Probability: 0.05},
	{ID: 2, Title: "30% off", Description: "On your next visit", Emoji: "🎉", Color: "#22C55E", Probability: 0.10},
	{ID: 3, Title: "Free pigmentation", Description: "Valid on your next haircut", Emoji: "🎨", Color: "#3B82F6", Probability: 0.15},
	{ID: 4, Title: "20% off", Description: "Use within 30 days", Emoji: "💰", Color: "#EAB308", Probability: 0.25},
	{ID: 5, Title: "10% off", Description: "On your next service", Emoji: "🎁", Color: "#F97316", Probability: 0.45},
}

// PrizeTable builds the weighted table over Prizes.
func PrizeTable() (*reward.Table[Prize], error) {
	entries := make([]reward.Entry[Prize], len(Prizes))
	for i, p := range Prizes {
		entries[i] = reward.Entry[Prize]{Weight: p.Probability, Value: p}
	}
	t, err := reward.NewTable(entries...)
	if err != nil {
		return nil, fmt.Errorf("promo: prize table: %w", err)
	}
	return t, nil
}

// Outcome is the result of the gift card coin flip.
type Outcome uint8

const (
	Lose Outcome = iota
	Win
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == Win {
		return "win"
	}
	return "lose"
}

// Flip wins for draws strictly above one half.
func Flip(src reward.Source) Outcome {
	if src.Float64() > 0.5 {
		return Win
	}
	return Lose
}
