package phone

import "strings"

const countryCode = "62"

// Normalize converts a locally formatted Indonesian phone number into its
// canonical international form: separators removed, the national trunk prefix
// "0" replaced by the country code, and a leading "+" stripped from numbers
// already carrying the country code. Anything else passes through with only
// the separators removed. The empty string is returned unchanged; callers that
// need a recipient must check for it themselves.
func Normalize(raw string) string {
	cleaned := stripSeparators(raw)
	switch {
	case strings.HasPrefix(cleaned, "0"):
		return countryCode + cleaned[1:]
	case strings.HasPrefix(cleaned, "+"+countryCode):
		return cleaned[1:]
	}
	return cleaned
}

func stripSeparators(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, value)
}
