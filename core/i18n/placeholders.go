package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes %{name} markers in template. Unknown
// markers are left as they are.
//
//	ReplacePlaceholders("Hello, %{name}!", M{"name": "Ana"}) // "Hello, Ana!"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "%{") {
		return template
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "%{"+key+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
