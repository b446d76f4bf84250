package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: CamelCase
// tokens are joined, case-folded to lower and separators (_, -, space) are
// dropped. "OrderID", "order_id" and "orderId" all become "orderid".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// StripKeySuffix normalizes s and removes a trailing "id"/"ids" token, so
// that a foreign-key name like "OrderID" yields the entity name "order".
// A name made only of the suffix is returned unchanged.
func StripKeySuffix(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 {
		switch tokens[len(tokens)-1] {
		case "id", "ids":
			tokens = tokens[:len(tokens)-1]
		}
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "parent_order-id" -> ["parent", "order", "id"]
func tokenizeCamelCase(s string) []string {
	var (
		tokens []string
		start  = -1
	)

	runes := []rune(s)
	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && startsToken(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether runes[i] begins a new CamelCase token:
// a lower-to-upper transition, or the last capital of an acronym that is
// followed by a lowercase letter ("XMLParser" splits before 'P').
func startsToken(runes []rune, i int) bool {
	if i == 0 || !unicode.IsUpper(runes[i]) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
