package pdf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var stripMarksAndPunct = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.In(unicode.P)),
	norm.NFC,
)

// normalizeForCompare folds case, accents, punctuation and whitespace so that
// two renderings of the same row compare equal even when one side was
// re-encoded or re-punctuated along the way. Used to drop a duplicated
// boundary row at a section continuation.
func normalizeForCompare(s string) string {
	out, _, err := transform.String(stripMarksAndPunct, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
