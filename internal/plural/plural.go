// Package plural knows how many plural forms a language uses, either from a
// catalog's Plural-Forms header or from CLDR rules for integer counts.
// Form names: "zero", "one", "two", "few", "many", "other".
package plural

import (
	"strconv"
	"strings"
)

// Form returns the CLDR plural form for the given language tag and count.
// Language tag is normalized to base (e.g. "en-US" -> "en", "pt_BR" -> "pt").
// Unknown languages default to "other".
func Form(lang string, count int) string {
	n := count
	if n < 0 {
		n = -n
	}
	switch base(lang) {
	case "ar":
		return formArabic(n)
	case "ru", "uk", "be", "sr", "hr", "bs", "sh":
		return formRussian(n)
	case "pl":
		return formPolish(n)
	case "cy", "br", "ga", "gd", "gv", "kw", "mt", "sm", "ak":
		return formWelsh(n)
	case "he", "iw":
		return formHebrew(n)
	case "en", "es", "fr", "de", "it", "pt", "nl", "no", "sv", "da", "fi", "tr", "el", "hi":
		return formOneOther(n)
	default:
		return "other"
	}
}

// gettextCounts holds the nplurals of the Plural-Forms headers gettext
// ships for languages whose CLDR forms it merges.
var gettextCounts = map[string]int{
	"cy": 4,
	"ga": 5,
	"gd": 4,
	"mt": 4,
}

// Count returns how many distinct forms integer counts select for lang.
// Languages without a rule here get gettext's default of two.
func Count(lang string) int {
	b := base(lang)
	if n, ok := gettextCounts[b]; ok {
		return n
	}
	if !known(b) {
		return 2
	}
	seen := make(map[string]struct{}, 6)
	for n := 0; n < 200; n++ {
		seen[Form(lang, n)] = struct{}{}
	}
	return len(seen)
}

// NPlurals extracts nplurals from a Plural-Forms header value such as
// "nplurals=2; plural=(n != 1);".
func NPlurals(pluralForms string) (int, bool) {
	for _, part := range strings.Split(pluralForms, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || strings.TrimSpace(key) != "nplurals" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func base(lang string) string {
	b := strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(b, "-_"); idx > 0 {
		b = b[:idx]
	}
	return b
}

func known(b string) bool {
	switch b {
	case "ar", "ru", "uk", "be", "sr", "hr", "bs", "sh", "pl",
		"cy", "br", "ga", "gd", "gv", "kw", "mt", "sm", "ak", "he", "iw",
		"en", "es", "fr", "de", "it", "pt", "nl", "no", "sv", "da", "fi", "tr", "el", "hi",
		"ja", "ko", "zh", "th", "vi", "id":
		return true
	}
	return false
}

func formOneOther(n int) string {
	if n == 1 {
		return "one"
	}
	return "other"
}

func formArabic(n int) string {
	if n == 0 {
		return "zero"
	}
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	if n >= 3 && n <= 10 {
		return "few"
	}
	if n >= 11 && n <= 99 {
		return "many"
	}
	return "other"
}

func formRussian(n int) string {
	n10 := n % 10
	n100 := n % 100
	if n10 == 1 && n100 != 11 {
		return "one"
	}
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	if n10 == 0 || (n10 >= 5 && n10 <= 9) || (n100 >= 11 && n100 <= 14) {
		return "many"
	}
	return "other"
}

// formPolish never yields "other" for integers: 11, 21, 101 are "many".
func formPolish(n int) string {
	if n == 1 {
		return "one"
	}
	n10 := n % 10
	n100 := n % 100
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	return "many"
}

func formWelsh(n int) string {
	if n == 0 {
		return "zero"
	}
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	if n == 3 {
		return "few"
	}
	if n == 6 {
		return "many"
	}
	return "other"
}

func formHebrew(n int) string {
	switch {
	case n == 1:
		return "one"
	case n == 2:
		return "two"
	case n > 10 && n%10 == 0:
		return "many"
	}
	return "other"
}
