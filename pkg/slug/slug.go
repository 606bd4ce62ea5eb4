package slug

import (
	"crypto/rand"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Letters that NFKD leaves intact but have a conventional Latin spelling.
var transliterations = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'œ': "oe", 'Œ': "OE",
	'þ': "th", 'Þ': "TH",
	'ı': "i",
}

// Make converts s into a URL-safe slug. It never fails: input without any
// usable characters yields "" (or only the random suffix when WithSuffix is set).
func Make(s string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s = applyReplacements(s, o.replacements)
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	if o.allowUnicode {
		s = norm.NFKC.String(s)
	} else {
		s = toASCII(s)
	}

	if o.lowercase {
		s = strings.ToLower(s)
	}

	s = collapse(s, o.separator, o.allowUnicode)

	suffix := ""
	if o.suffixLength > 0 {
		suffix = randomSuffix(o.suffixLength)
	}

	if o.maxLength > 0 {
		limit := o.maxLength
		if suffix != "" {
			limit -= len(suffix) + len([]rune(o.separator))
		}
		s = truncate(s, limit, o.separator)
	}

	switch {
	case suffix == "":
		return s
	case s == "":
		return suffix
	default:
		return s + o.separator + suffix
	}
}

// IsValid reports whether s is a well-formed slug using the default separator.
func IsValid(s string, allowUnicode bool) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_':
		case r < unicode.MaxASCII:
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
				return false
			}
		case !allowUnicode:
			return false
		case unicode.IsUpper(r):
			return false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		default:
			return false
		}
	}
	return true
}

func applyReplacements(s string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return s
	}
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	for _, k := range keys {
		s = strings.ReplaceAll(s, k, " "+replacements[k]+" ")
	}
	return s
}

func toASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		if repl, ok := transliterations[r]; ok {
			b.WriteString(repl)
			continue
		}
		// Non-ASCII whitespace still separates words.
		if unicode.IsSpace(r) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// collapse keeps word characters and turns runs of whitespace or hyphens into sep.
func collapse(s, sep string, allowUnicode bool) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		switch {
		case r == '-' || unicode.IsSpace(r):
			pending = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || (allowUnicode && unicode.IsMark(r)):
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
		}
	}
	return trimEdges(b.String(), sep)
}

func trimEdges(s, sep string) string {
	for {
		before := s
		s = strings.TrimPrefix(strings.TrimSuffix(s, sep), sep)
		s = strings.Trim(s, "_")
		if s == before {
			return s
		}
	}
}

func truncate(s string, limit int, sep string) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return trimEdges(string(r[:limit]), sep)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = byte(i * 7)
		}
	}
	for i, v := range buf {
		buf[i] = suffixAlphabet[int(v)%len(suffixAlphabet)]
	}
	return string(buf)
}
