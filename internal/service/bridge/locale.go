package bridge

import "strings"

// LocaleToLanguage reduces a BCP-47 tag to its primary language subtag,
// lowercased ("en-US" -> "en"). Canonical examples are stored per language,
// not per full locale.
func LocaleToLanguage(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
