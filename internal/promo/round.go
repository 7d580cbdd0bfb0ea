package promo

import (
	"golang.org/x/text/message"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/reward"
)

// Round is one play of a promo card. It follows the card's progress and
// draws the reward when the card reveals: a prize from the table for the
// promo card, a coin flip for the gift card.
type Round struct {
	prizes *reward.Table[Prize]
	src    reward.Source
	gift   bool

	Percentage float64
	Revealed   bool
	Prize      *Prize
	Outcome    Outcome
}

// NewRound prepares a round for cards built from cfg. src feeds every
// draw of every round until the Round is discarded.
func NewRound(cfg scratchcard.Config, src reward.Source) (*Round, error) {
	prizes, err := PrizeTable()
	if err != nil {
		return nil, err
	}
	return &Round{prizes: prizes, src: src, gift: cfg.Content.Image != ""}, nil
}

// Progress records the latest coverage sample. Wire it to
// scratchcard.WithOnProgress.
func (r *Round) Progress(percentage float64) {
	r.Percentage = percentage
}

// Reveal draws the reward. Wire it to scratchcard.WithOnComplete.
func (r *Round) Reveal(c scratchcard.Completion) {
	r.Revealed = true
	r.Percentage = c.Percentage
	if r.gift {
		r.Outcome = Flip(r.src)
		return
	}
	p := r.prizes.Pick(r.src)
	r.Prize = &p
}

// Reset forgets the result before a new card is dealt.
func (r *Round) Reset() {
	r.Percentage = 0
	r.Revealed = false
	r.Prize = nil
	r.Outcome = Lose
}

// Status returns the progress line followed by the prompt or the result,
// translated by p.
func (r *Round) Status(p *message.Printer) []string {
	lines := []string{p.Sprintf(MsgProgress, r.Percentage)}
	switch {
	case !r.Revealed:
		lines = append(lines, p.Sprintf(MsgPrompt))
	case r.Prize != nil:
		lines = append(lines,
			r.Prize.Emoji+" "+p.Sprintf(MsgCongrats)+" "+Text(p, r.Prize.Title),
			Text(p, r.Prize.Description))
	case r.Outcome == Win:
		lines = append(lines, "🎉 "+p.Sprintf(MsgGiftCard))
	default:
		lines = append(lines, "😔 "+p.Sprintf(MsgTryAgain))
	}
	return lines
}
