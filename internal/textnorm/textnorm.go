// Package textnorm canonicalizes one noisy short-text item: Unicode
// form, character width, Han script, platform noise (URLs, mentions,
// topic markers, emoji, sticker tokens), whitespace runs and repeated
// characters. Normalize is deterministic, pure and total — garbage in
// yields empty or near-empty output, never an error.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/bilicorpus/refinery/internal/simplified"
)

// Full-width block folded to ASCII: U+FF01..U+FF5E minus 0xFEE0.
const (
	fullWidthFirst   = 0xFF01
	fullWidthLast    = 0xFF5E
	fullWidthOffset  = 0xFEE0
	ideographicSpace = 0x3000
)

// maxRepeat caps runs of the same character.
const maxRepeat = 3

var (
	urlPattern     = regexp.MustCompile(`https?://(?:[a-zA-Z0-9]|[$-_@.&+]|[!*(),]|%[0-9a-fA-F]{2})+`)
	mentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
	topicPattern   = regexp.MustCompile(`#[\p{L}\p{N}_]+#`)
	stickerPattern = regexp.MustCompile(`\[.*?\]`)

	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	newlineRun      = regexp.MustCompile(`\n\s*`)
	multiNewline    = regexp.MustCompile(`\n+`)
)

// emojiRanges covers the pictographic, symbol, flag and transport
// blocks stripped during normalization.
var emojiRanges = [][2]rune{
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2702, 0x27B0},   // dingbats
	{0xFE00, 0xFE0F},   // variation selectors
	{0x1F100, 0x1F2FF}, // enclosed alphanumeric/ideographic supplement
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FAFF}, // extended symbols and pictographs
}

// displayPunct is the conservative punctuation allow-list kept in
// display mode; analysisPunct adds characters that carry sentiment.
var (
	displayPunct  = map[rune]bool{}
	analysisPunct = map[rune]bool{'~': true, '…': true}
)

func init() {
	for _, r := range "，。！？、；：“”‘’（）《》[],.!?-" {
		displayPunct[r] = true
	}
}

// Normalizer applies the full canonicalization sequence. Safe for
// concurrent use as long as the injected converter is.
type Normalizer struct {
	converter simplified.Converter
	logger    *zerolog.Logger
}

// New creates a Normalizer. The converter handles traditional-to-
// simplified script conversion; logger may be nil.
func New(converter simplified.Converter, logger *zerolog.Logger) *Normalizer {
	return &Normalizer{
		converter: converter,
		logger:    logger,
	}
}

// Normalize canonicalizes text. When forAnalysis is true the allow-list
// additionally retains sentiment-bearing characters (~ … and friends);
// display mode strips them. The step order is fixed: each step assumes
// the shape produced by the previous one.
func (n *Normalizer) Normalize(text string, forAnalysis bool) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = foldWidth(text)
	text = n.toSimplified(text)

	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = topicPattern.ReplaceAllString(text, "")

	text = stripEmoji(text)

	text = horizontalSpace.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	text = multiNewline.ReplaceAllString(text, "\n")

	text = filterAllowed(text, forAnalysis)
	text = compressRepeats(text, maxRepeat)

	return strings.TrimSpace(text)
}

// toSimplified converts traditional Han characters when the converter
// capability is present. Conversion failure falls back to the
// unconverted text.
func (n *Normalizer) toSimplified(text string) string {
	if n.converter == nil || !n.converter.IsAvailable() {
		return text
	}

	converted, err := n.converter.Convert(text)
	if err != nil {
		if n.logger != nil {
			n.logger.Warn().Err(err).Msg("script conversion failed, keeping original text")
		}

		return text
	}

	return converted
}

// foldWidth maps full-width ASCII variants (U+FF01..U+FF5E) to their
// half-width forms and the ideographic space to an ASCII space.
func foldWidth(text string) string {
	var b strings.Builder

	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == ideographicSpace:
			b.WriteRune(' ')
		case r >= fullWidthFirst && r <= fullWidthLast:
			b.WriteRune(r - fullWidthOffset)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}

	return false
}

// stripEmoji removes pictographic characters and bracket-delimited
// platform sticker tokens like [doge].
func stripEmoji(text string) string {
	text = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}

		return r
	}, text)

	return stickerPattern.ReplaceAllString(text, "")
}

// filterAllowed keeps word characters, CJK, whitespace and the
// conservative punctuation set; analysis mode retains extra
// sentiment-bearing characters.
func filterAllowed(text string, forAnalysis bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			return r
		case unicode.IsSpace(r):
			return r
		case displayPunct[r]:
			return r
		case forAnalysis && analysisPunct[r]:
			return r
		default:
			return -1
		}
	}, text)
}

// compressRepeats caps every maximal run of one character at max
// occurrences. The scan is rune-based so multi-byte CJK characters
// count as single units.
func compressRepeats(text string, max int) string {
	var b strings.Builder

	b.Grow(len(text))

	var prev rune

	count := 0

	for i, r := range text {
		if i > 0 && r == prev {
			count++
			if count <= max {
				b.WriteRune(r)
			}

			continue
		}

		prev = r
		count = 1

		b.WriteRune(r)
	}

	return b.String()
}
