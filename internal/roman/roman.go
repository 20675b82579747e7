// Package roman converts Roman numerals used in chapter headings.
package roman

import (
	"regexp"
	"strings"
)

// validNumeral accepts canonical numerals from I to MMMCMXCIX.
var validNumeral = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

var values = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// IsNumeral reports whether s is a canonical Roman numeral (case-insensitive).
func IsNumeral(s string) bool {
	if s == "" {
		return false
	}
	return validNumeral.MatchString(strings.ToUpper(s))
}

// ToInt converts a Roman numeral to its integer value.
// Returns 0 and false when s is not a canonical numeral.
func ToInt(s string) (int, bool) {
	if !IsNumeral(s) {
		return 0, false
	}
	s = strings.ToUpper(s)

	total := 0
	for i := 0; i < len(s); i++ {
		v := values[s[i]]
		if i+1 < len(s) && v < values[s[i+1]] {
			total -= v
			continue
		}
		total += v
	}
	return total, true
}
