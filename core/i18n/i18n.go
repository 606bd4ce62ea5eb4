package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultLang is used when WithDefaultLanguage is not given.
const DefaultLang = "en"

// M holds placeholder values for a translation.
type M map[string]any

// I18n is an immutable translation catalog. Build it with New; it is safe
// for concurrent use.
type I18n struct {
	// "lang:namespace:dotted.key" -> message
	translations      map[string]string
	defaultLang       string
	languages         []string
	missingKeyHandler func(lang, namespace, key string)
}

// Option configures an I18n during New.
type Option func(*I18n) error

// New builds a catalog from opts.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// Default first, the rest sorted.
	langs := slices.DeleteFunc(slices.Clone(i.languages), func(l string) bool { return l == i.defaultLang })
	slices.Sort(langs)
	i.languages = append([]string{i.defaultLang}, slices.Compact(langs)...)
	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages declares supported languages in addition to those that
// have translations.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, l := range langs {
			if l != "" {
				i.languages = append(i.languages, l)
			}
		}
		return nil
	}
}

// WithMissingKeyHandler is called when a key has no translation in either
// the requested or the default language.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = fn
		return nil
	}
}

// WithTranslations adds messages for lang and namespace. Nested maps are
// flattened into dotted keys, so {"home": {"title": "..."}} is looked up
// as "home.title".
func WithTranslations(lang, namespace string, messages map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		for key, msg := range flatten(messages, "") {
			i.translations[buildKey(lang, namespace, key)] = msg
		}
		if !slices.Contains(i.languages, lang) {
			i.languages = append(i.languages, lang)
		}
		return nil
	}
}

// T returns the message for key in lang, falling back to the default
// language and finally to key itself.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if msg, ok := i.lookup(lang, namespace, key); ok {
		return ReplacePlaceholders(msg, merge(placeholders))
	}
	i.missing(lang, namespace, key)
	return key
}

// Tn returns the plural form of key that matches n in lang. Forms are
// stored as sub-keys named after the CLDR categories ("one", "few",
// "other", ...). n is available as the %{count} placeholder.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	values := merge(append([]M{{"count": n}}, placeholders...))

	for _, l := range []string{lang, i.defaultLang} {
		for _, form := range pluralForms(l, n) {
			if msg, ok := i.translations[buildKey(l, namespace, key+"."+form)]; ok {
				return ReplacePlaceholders(msg, values)
			}
		}
		if l == i.defaultLang {
			break
		}
	}

	i.missing(lang, namespace, key)
	return key
}

// Has reports whether key is translated in lang, without fallback.
func (i *I18n) Has(lang, namespace, key string) bool {
	_, ok := i.translations[buildKey(lang, namespace, key)]
	return ok
}

// Languages returns the default language followed by the others, sorted.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	if msg, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return msg, true
	}
	if lang != i.defaultLang {
		msg, ok := i.translations[buildKey(i.defaultLang, namespace, key)]
		return msg, ok
	}
	return "", false
}

func (i *I18n) missing(lang, namespace, key string) {
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			maps.Copy(out, flatten(v, full))
		case map[string]string:
			for k, s := range v {
				out[full+"."+k] = s
			}
		default:
			out[full] = fmt.Sprint(v)
		}
	}
	return out
}

func merge(ms []M) M {
	out := make(M)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}
