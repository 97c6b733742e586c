package nlparse

import (
	"regexp"
	"strings"
)

// Closed particle and ending sets for title cleanup. Each is stripped at
// most once, in the order applied by NormalizeTitle.
var (
	leadingParticlePattern  = regexp.MustCompile(`^(에는|은|는|이|가|을|를|에)\s*`)
	trailingEndingPattern   = regexp.MustCompile(`(이야|있어|있고|있습니다|예정)\s*$`)
	trailingParticlePattern = regexp.MustCompile(`(이|가|은|는|을|를)$`)
	whitespacePattern       = regexp.MustCompile(`\s+`)
)

// NormalizeTitle trims a free-text span down to a clean event title:
// surrounding punctuation, one leading particle, one trailing auxiliary
// ending, one trailing single-character particle, collapsed whitespace.
// An empty result falls back to DefaultTitle. The function is idempotent.
func NormalizeTitle(raw string) string {
	text := strings.Trim(raw, " ,.")
	text = leadingParticlePattern.ReplaceAllString(text, "")
	text = trailingEndingPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = trailingParticlePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.Trim(text, " ,.")
	if text == "" {
		return DefaultTitle
	}
	return text
}
