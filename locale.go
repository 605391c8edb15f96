package poproject

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ToLocale turns a language code into the directory name gettext uses:
// "de-at" becomes "de_AT", "sr-latn" becomes "sr_Latn".
func ToLocale(code string) string {
	code = strings.TrimSpace(code)
	if tag, err := language.Raw.Parse(code); err == nil {
		return strings.ReplaceAll(tag.String(), "-", "_")
	}
	return toLocaleFallback(code)
}

func toLocaleFallback(code string) string {
	parts := strings.SplitN(strings.ReplaceAll(code, "_", "-"), "-", 2)
	lang := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return lang
	}
	region := parts[1]
	if len(region) > 2 {
		region = strings.ToUpper(region[:1]) + strings.ToLower(region[1:])
	} else {
		region = strings.ToUpper(region)
	}
	return lang + "_" + region
}

// checkLocale accepts only the configured target languages, matched exactly.
func (c Config) checkLocale(locale string) error {
	if locale == "" {
		return newError(KindUsage, "", "a locale is required", ErrUnsupportedLocale)
	}
	for _, supported := range c.SupportedLocales() {
		if supported == locale {
			return nil
		}
	}
	return newError(KindUsage, "", fmt.Sprintf("unsupported locale: [%s], supported: [%s]",
		locale, strings.Join(c.SupportedLocales(), ", ")), ErrUnsupportedLocale)
}
