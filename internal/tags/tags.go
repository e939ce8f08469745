// Package tags normalizes multi-valued tag fields into lowercase token sets.
//
// Source data carries tags in several shapes: plain delimited strings
// ("music, dance"), bracketed list-looking strings ("['Music', 'Dance']"),
// or a single bare value. One grammar covers all of them: trim whitespace,
// strip a single matching outer bracket pair, split on comma, strip quote
// characters, lowercase, discard empty tokens.
package tags

import "strings"

// Tokenize applies the normalization grammar to a raw field value.
func Tokenize(val string) []string {
	cleaned := strings.TrimSpace(val)
	if len(cleaned) >= 2 && cleaned[0] == '[' && cleaned[len(cleaned)-1] == ']' {
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	var tokens []string
	for _, part := range strings.Split(cleaned, ",") {
		token := strings.ToLower(strings.Trim(strings.TrimSpace(part), `'" `))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Set tokenizes every value and collects the tokens into one set.
func Set(vals ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, val := range vals {
		for _, token := range Tokenize(val) {
			set[token] = struct{}{}
		}
	}
	return set
}

// Intersects reports whether the two token sets share any token.
// Empty sets never intersect.
func Intersects(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for token := range a {
		if _, ok := b[token]; ok {
			return true
		}
	}
	return false
}
