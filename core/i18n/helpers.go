package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// ParseAcceptLanguage picks the language from available that best matches
// an Accept-Language header. It returns available[0] when nothing matches
// and "" when available is empty.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	header = strings.TrimSpace(header)
	if header == "" {
		return available[0]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, len(available))
	for i, code := range available {
		supported[i] = language.Make(code)
	}
	_, idx, confidence := language.NewMatcher(supported).Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(available) {
		return available[0]
	}
	return available[idx]
}
