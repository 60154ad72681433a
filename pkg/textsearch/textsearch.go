// Package textsearch rassemble les helpers de recherche textuelle insensible à la casse
// et aux accents utilisés par les repositories.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const escapeChar = "!"

// Fold supprime les accents et passe en minuscules ("Éthique" -> "ethique").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

var likeEscaper = strings.NewReplacer(escapeChar, escapeChar+escapeChar, "%", escapeChar+"%", "_", escapeChar+"_")

// LikePattern échappe les jokers SQL de term et l'entoure de %.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// FoldedPattern comme LikePattern, sur le terme replié par Fold.
func FoldedPattern(term string) string {
	return "%" + likeEscaper.Replace(Fold(strings.TrimSpace(term))) + "%"
}

// SQLFilter renvoie un fragment WHERE "contient, sans casse" portable (postgres, mysql, sqlite).
func SQLFilter(column, term string) (string, []interface{}) {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + escapeChar + "'", []interface{}{LikePattern(term)}
}

// SQLFoldedFilter cherche term dans une colonne déjà repliée à l'écriture (voir Fold).
// Insensible à la casse et aux accents quel que soit le dialecte, LOWER() n'étant pas
// Unicode sous sqlite.
func SQLFoldedFilter(column, term string) (string, []interface{}) {
	return column + " LIKE ? ESCAPE '" + escapeChar + "'", []interface{}{FoldedPattern(term)}
}

// SQLFilterAny combine SQLFilter sur plusieurs colonnes avec OR.
func SQLFilterAny(columns []string, term string) (string, []interface{}) {
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		frag, a := SQLFilter(col, term)
		parts = append(parts, frag)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// Initials renvoie les n premières lettres de s, sans accents, en majuscules.
// Les caractères non alphabétiques sont ignorés.
func Initials(s string, n int) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		if b.Len() >= n {
			break
		}
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
