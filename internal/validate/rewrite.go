package validate

import "strings"

// Rewrite applies a diagnostic's best suggestion to the query text and
// returns the repaired query. It reports false when the diagnostic
// carries no usable suggestion. Replacement is per-identifier: every
// occurrence of the offending token is swapped, so a column misspelled
// in both SELECT and ORDER BY is repaired everywhere.
func Rewrite(query string, d Diagnostic) (string, bool) {
	if len(d.Suggestions) == 0 || d.Ambiguous {
		return query, false
	}

	// For qualified tokens only the column part is replaced.
	target := d.Token
	if i := strings.LastIndexByte(target, '.'); i >= 0 && d.Kind == KindUnknownColumn {
		target = target[i+1:]
	}
	replacement := d.Suggestions[0]

	var b strings.Builder
	replaced := false
	for i := 0; i < len(query); {
		if !matchesIdent(query, i, target) {
			b.WriteByte(query[i])
			i++
			continue
		}
		b.WriteString(replacement)
		i += len(target)
		replaced = true
	}
	if !replaced {
		return query, false
	}
	return b.String(), true
}

// matchesIdent reports whether target occurs at offset i as a whole
// identifier, case-insensitively.
func matchesIdent(query string, i int, target string) bool {
	if i+len(target) > len(query) {
		return false
	}
	if !strings.EqualFold(query[i:i+len(target)], target) {
		return false
	}
	if i > 0 && isIdentByte(query[i-1]) {
		return false
	}
	if end := i + len(target); end < len(query) && isIdentByte(query[end]) {
		return false
	}
	return true
}

func isIdentByte(ch byte) bool {
	return ch == '_' || '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}
