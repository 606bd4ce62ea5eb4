package i18n

// Translator binds an I18n to one language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator returns a Translator for language, or the default language
// when language is empty.
func NewTranslator(i *I18n, language, namespace string) *Translator {
	if i == nil {
		panic("i18n: translator needs a catalog")
	}
	if language == "" {
		language = i.DefaultLanguage()
	}
	return &Translator{i18n: i, language: language, namespace: namespace}
}

// T translates key.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Tn translates the plural form of key for n.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.i18n.Tn(t.language, t.namespace, key, n, placeholders...)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the bound namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}
