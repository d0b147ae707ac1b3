// Package filter decides whether a normalized text item is admissible
// for the corpus. The gate composes three independent predicates:
// length bounds, spam heuristics and a language-ratio check tuned for
// predominantly Chinese streams.
package filter

import "unicode"

// Default bounds for the standalone display-path gate.
const (
	DefaultMinLength       = 2
	DefaultMaxLength       = 500
	DefaultMinChineseRatio = 0.3
)

// Spam heuristic thresholds.
const (
	identicalRunMinLen = 5
	diversityMinLen    = 10
	minUniqueRatio     = 0.3
)

// Texts at or below this rune count are exempt from the language-ratio
// check; short non-Chinese tokens are tolerated.
const ratioExemptLen = 10

// LengthOK reports whether the rune count of text lies in [min, max].
// Empty text fails.
func LengthOK(text string, min, max int) bool {
	if text == "" {
		return false
	}

	n := runeLen(text)

	return min <= n && n <= max
}

// IsSpam flags low-information content: empty or all-digit text, text
// without a single word or CJK character, long single-character runs,
// and long texts whose distinct-character ratio is below 0.3.
func IsSpam(text string) bool {
	if text == "" {
		return true
	}

	runes := []rune(text)

	if allDigits(runes) {
		return true
	}

	if !hasWordChar(runes) {
		return true
	}

	distinct := distinctCount(runes)

	if distinct == 1 && len(runes) > identicalRunMinLen {
		return true
	}

	if len(runes) > diversityMinLen {
		uniqueRatio := float64(distinct) / float64(len(runes))
		if uniqueRatio < minUniqueRatio {
			return true
		}
	}

	return false
}

// ChineseRatio returns the fraction of runes inside the CJK Unified
// Ideographs block.
func ChineseRatio(text string) float64 {
	if text == "" {
		return 0
	}

	runes := []rune(text)
	cjk := 0

	for _, r := range runes {
		if isCJK(r) {
			cjk++
		}
	}

	return float64(cjk) / float64(len(runes))
}

// IsMeaningful reports whether text passes the full admissibility gate
// with default length bounds.
func IsMeaningful(text string, minChineseRatio float64) bool {
	return IsMeaningfulBounds(text, DefaultMinLength, DefaultMaxLength, minChineseRatio)
}

// IsMeaningfulBounds is IsMeaningful with explicit length bounds, used
// by the configurable pipeline.
func IsMeaningfulBounds(text string, minLen, maxLen int, minChineseRatio float64) bool {
	if !LengthOK(text, minLen, maxLen) {
		return false
	}

	if IsSpam(text) {
		return false
	}

	return chineseRatioOK(text, minChineseRatio)
}

func chineseRatioOK(text string, minRatio float64) bool {
	if runeLen(text) <= ratioExemptLen {
		return true
	}

	return ChineseRatio(text) >= minRatio
}

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func runeLen(text string) int {
	n := 0
	for range text {
		n++
	}

	return n
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

func hasWordChar(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}

	return false
}

func distinctCount(runes []rune) int {
	seen := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		seen[r] = struct{}{}
	}

	return len(seen)
}
