package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// genreSeparators splits multi-genre values regardless of which delimiter
// the source used.
func genreSeparators(r rune) bool {
	return r == ',' || r == ';' || r == '|'
}

// titleCaser title-cases genre tokens ("action rpg" -> "Action Rpg").
var titleCaser = cases.Title(language.English)

// Genres splits a raw genre value on "," / ";" / "|", cleans and title-cases
// each token, drops tokens of length <= 1, and re-joins with ", ". The empty
// string is the null result.
func Genres(raw string) string {
	tokens := strings.FieldsFunc(raw, genreSeparators)

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		cleaned := Text(token)
		if len([]rune(cleaned)) <= 1 {
			continue
		}
		out = append(out, titleCaser.String(strings.ToLower(cleaned)))
	}
	return strings.Join(out, ", ")
}
