package promo

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Format message keys. The English text is the key; French is registered
// below.
const (
	MsgPrompt        = "Scratch to reveal your prize!"
	MsgScratchHere   = "SCRATCH HERE"
	MsgProgress      = "%.0f%% scratched"
	MsgCongrats      = "Congratulations!"
	MsgGiftCard      = "You got a $50 Apple gift card!"
	MsgTryAgain      = "Try again"
	MsgPlayAgain     = "Play again"
	MsgRevealedAfter = "Revealed at %.1f%%"
)

// DefaultLanguage is the language of the promo page.
var DefaultLanguage = language.French

var supported = []language.Tag{language.French, language.English}

// formats are printf formats; texts are literal strings such as prize
// titles and may contain a bare '%'.
var (
	formats = map[string]string{
		MsgPrompt:        "Gratte pour découvrir ton prix !",
		MsgScratchHere:   "GRATTE ICI",
		MsgProgress:      "%.0f%% gratté",
		MsgCongrats:      "Félicitations !",
		MsgGiftCard:      "Tu as gagné une carte cadeau Apple de 50 $ !",
		MsgTryAgain:      "Retente ta chance",
		MsgPlayAgain:     "Recommencer",
		MsgRevealedAfter: "Révélé à %.1f%%",
	}

	texts = map[string]string{
		"Free haircut":                "Coupe gratuite",
		"Your next haircut is on us!": "Ta prochaine coupe est offerte !",
		"30% off":                     "30% de réduction",
		"On your next visit":          "Sur ta prochaine visite",
		"Free pigmentation":           "Pigmentation offerte",
		"Valid on your next haircut":  "Valable sur ta prochaine coupe",
		"20% off":                     "20% de réduction",
		"Use within 30 days":          "À utiliser dans les 30 jours",
		"10% off":                     "10% de réduction",
		"On your next service":        "Sur ta prochaine prestation",
	}
)

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key, fr string) {
		if err := b.SetString(language.French, key, fr); err != nil {
			panic("promo: " + err.Error())
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic("promo: " + err.Error())
		}
	}
	for key, fr := range formats {
		set(key, fr)
	}
	for key, fr := range texts {
		set(escape(key), escape(fr))
	}
	return b
}

func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// Match picks the supported language closest to the given BCP 47 tags,
// such as the value of $LANG or an Accept-Language header. An empty or
// unparsable preference yields DefaultLanguage.
func Match(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		// POSIX locales look like fr_FR.UTF-8.
		p, _, _ = strings.Cut(p, ".")
		if t, err := language.Parse(strings.ReplaceAll(p, "_", "-")); err == nil {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return DefaultLanguage
	}
	_, i, conf := language.NewMatcher(supported).Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	return supported[i]
}

// Printer formats promo messages in tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Text translates a literal string such as a prize title.
func Text(p *message.Printer, s string) string {
	k := escape(s)
	return p.Sprintf(message.Key(k, k))
}
