package product

import (
	"regexp"
	"strings"
)

// Word characters are Unicode letters and digits, so non-English product
// names ("दूध", "Nestlé") keep their letters instead of normalizing away.
var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Normalize canonicalizes a product name for matching and dedup: lowercase,
// punctuation stripped, whitespace runs collapsed to single spaces. It is a
// pure function and idempotent.
func Normalize(name string) string {
	normalized := nonWordChars.ReplaceAllString(strings.ToLower(name), "")
	return strings.Join(strings.Fields(normalized), " ")
}
