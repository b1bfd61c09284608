package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reBullets     = regexp.MustCompile(`[•●▪➢➣➤]`)
	reHorizSpaces = regexp.MustCompile(`[ \t]+`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes raw extracted text before section detection:
//   - NFKD decomposition (ligatures and accented forms fall apart into base runes)
//   - bullet glyphs become "-"
//   - runs of spaces/tabs collapse to one space, newlines are kept
//   - CRLF and CR become LF, 3+ newlines collapse to a single blank line
//   - lowercase, trimmed
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKD.String(s)
	s = reBullets.ReplaceAllString(s, "-")
	s = reHorizSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	s = strings.ToLower(s)
	return strings.TrimSpace(s)
}
