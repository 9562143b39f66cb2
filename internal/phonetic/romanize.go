// Package phonetic produces the pinyin reading of Chinese words.
package phonetic

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Romanize returns the tone-marked pinyin of text, one syllable per Han character,
// separated by spaces ("你好" -> "nǐ hǎo"). Runs of other characters are kept as-is.
func Romanize(text string) string {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone

	var tokens []string
	var run []rune
	han := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		if han {
			tokens = append(tokens, pinyin.LazyPinyin(string(run), args)...)
		} else if s := strings.TrimSpace(string(run)); s != "" {
			tokens = append(tokens, s)
		}
		run = run[:0]
	}

	for _, r := range text {
		isHan := unicode.Is(unicode.Han, r)
		if isHan != han {
			flush()
			han = isHan
		}
		run = append(run, r)
	}
	flush()

	return strings.Join(tokens, " ")
}

// Clip shortens a romanization to at most maxLen runes without cutting a syllable.
// A single syllable longer than maxLen is cut rune-wise.
func Clip(reading string, maxLen int) string {
	if len([]rune(reading)) <= maxLen {
		return reading
	}
	var b strings.Builder
	n := 0
	for i, syllable := range strings.Fields(reading) {
		width := len([]rune(syllable))
		if i > 0 {
			width++
		}
		if n+width > maxLen {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(syllable)
		n += width
	}
	if b.Len() == 0 {
		return string([]rune(reading)[:maxLen])
	}
	return b.String()
}
