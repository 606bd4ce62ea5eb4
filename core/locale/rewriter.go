package locale

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header parsed for bypassed paths.
const maxAcceptLanguageLength = 4096

// Rewriter decides the active language for a request path and computes
// canonical, language-prefixed URLs. It is immutable and safe for concurrent use.
type Rewriter struct {
	cfg     Config
	codes   map[string]string // code -> display name
	matcher language.Matcher
}

// New validates cfg and builds a Rewriter.
func New(cfg Config) (*Rewriter, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	codes := make(map[string]string, len(norm.Languages))
	tags := make([]language.Tag, 0, len(norm.Languages))
	for _, l := range norm.Languages {
		codes[l.Code] = l.Name
		tags = append(tags, language.Make(l.Code))
	}

	return &Rewriter{
		cfg:     norm,
		codes:   codes,
		matcher: language.NewMatcher(tags),
	}, nil
}

// MustNew is like New but panics on an invalid Config.
func MustNew(cfg Config) *Rewriter {
	rw, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return rw
}

// Config returns the normalized configuration.
func (rw *Rewriter) Config() Config {
	return rw.cfg
}

// Default returns the default language code.
func (rw *Rewriter) Default() string {
	return rw.cfg.Default
}

// CookieName returns the name of the language preference cookie.
func (rw *Rewriter) CookieName() string {
	return rw.cfg.CookieName
}

// Languages returns the supported languages in configured order.
func (rw *Rewriter) Languages() Languages {
	return slices.Clone(rw.cfg.Languages)
}

// DisplayName returns the configured name for code, or "" if unsupported.
func (rw *Rewriter) DisplayName(code string) string {
	return rw.codes[code]
}

// IsSupported reports whether code is one of the configured language codes.
func (rw *Rewriter) IsSupported(code string) bool {
	_, ok := rw.codes[code]
	return ok
}

// IsExcluded reports whether path starts with an excluded prefix.
func (rw *Rewriter) IsExcluded(path string) bool {
	for _, p := range rw.cfg.ExcludedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// LanguageFromPath returns the supported language in the first path segment,
// or "" when there is none.
func (rw *Rewriter) LanguageFromPath(path string) string {
	segment, ok := firstSegment(path)
	if !ok || !rw.IsSupported(segment) {
		return ""
	}
	return segment
}

// StripPrefix removes a leading /<code>/ for any configured code. A bare
// /<code> becomes /. Slashes left at the start of the remainder collapse
// into one, so the result never reads as a protocol-relative URL.
// Other paths are returned unchanged.
func (rw *Rewriter) StripPrefix(path string) string {
	code := rw.LanguageFromPath(path)
	if code == "" {
		return path
	}
	return "/" + strings.TrimLeft(path[len(code)+1:], "/\\")
}

// IsLocalPath reports whether p is an absolute path on this host that a
// browser cannot resolve to another origin.
func IsLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsRune(p, '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == "" && u.User == nil
}

// AddPrefix prepends /<code> to path.
func (rw *Rewriter) AddPrefix(path, code string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + code + path
}

// LocalizedPath returns path rewritten for code: any existing prefix is
// removed and /<code> is added unless code is the default language.
// Unsupported codes yield the unprefixed path.
func (rw *Rewriter) LocalizedPath(path, code string) string {
	clean := rw.StripPrefix(path)
	if code == rw.cfg.Default || !rw.IsSupported(code) {
		return clean
	}
	return rw.AddPrefix(clean, code)
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header, falling back to the default.
func (rw *Rewriter) MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || len(header) > maxAcceptLanguageLength {
		return rw.cfg.Default
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return rw.cfg.Default
	}

	_, idx, confidence := rw.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(rw.cfg.Languages) {
		return rw.cfg.Default
	}
	return rw.cfg.Languages[idx].Code
}

// firstSegment returns the text between the leading slash and the next one.
func firstSegment(path string) (string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	rest := path[1:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}
