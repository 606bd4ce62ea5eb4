package slug

// Option configures Make.
type Option func(*options)

type options struct {
	allowUnicode bool
	separator    string
	maxLength    int
	lowercase    bool
	replacements map[string]string
	stripChars   string
	suffixLength int
}

func defaultOptions() options {
	return options{
		separator: "-",
		lowercase: true,
	}
}

// AllowUnicode keeps non-ASCII letters and digits instead of transliterating
// them to ASCII.
func AllowUnicode(allow bool) Option {
	return func(o *options) {
		o.allowUnicode = allow
	}
}

// Separator sets the string used between words. Empty values are ignored.
func Separator(sep string) Option {
	return func(o *options) {
		if sep != "" {
			o.separator = sep
		}
	}
}

// MaxLength limits the slug to n runes, suffix included. Zero or negative means no limit.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// Lowercase controls case folding. Enabled by default.
func Lowercase(lower bool) Option {
	return func(o *options) {
		o.lowercase = lower
	}
}

// CustomReplace substitutes substrings before normalization.
// Longer keys are applied first so overlapping keys behave predictably.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		if o.replacements == nil {
			o.replacements = make(map[string]string, len(replacements))
		}
		for k, v := range replacements {
			o.replacements[k] = v
		}
	}
}

// StripChars removes every listed character before normalization.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars += chars
	}
}

// WithSuffix appends a random [a-z0-9] suffix of n characters.
func WithSuffix(n int) Option {
	return func(o *options) {
		o.suffixLength = max(n, 0)
	}
}
