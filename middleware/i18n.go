package middleware

import (
	"context"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/i18n"
)

type i18nTranslatorContextKey struct{}

// I18nConfig configures the i18n middleware.
type I18nConfig struct {
	Skip func(ctx handler.Context) bool
	// I18n holds the translations (required).
	I18n *i18n.I18n
	// LanguageExtractor picks the request language. The default uses the
	// language activated by the locale middleware and then Accept-Language.
	LanguageExtractor func(ctx handler.Context) string
	// Namespace is the translation namespace (required).
	Namespace string
	// FallbackLanguage is used when extraction yields nothing
	// (default: the catalog's default language).
	FallbackLanguage string
}

// I18n stores a translator for the active language in the context.
func I18n[C handler.Context](catalog *i18n.I18n, namespace string) handler.Middleware[C] {
	return I18nWithConfig[C](I18nConfig{I18n: catalog, Namespace: namespace})
}

// I18nWithConfig creates an i18n middleware with custom configuration.
func I18nWithConfig[C handler.Context](cfg I18nConfig) handler.Middleware[C] {
	if cfg.I18n == nil {
		panic("i18n middleware: i18n instance is required")
	}
	if cfg.Namespace == "" {
		panic("i18n middleware: namespace is required")
	}
	if cfg.FallbackLanguage == "" {
		cfg.FallbackLanguage = cfg.I18n.DefaultLanguage()
	}
	if cfg.LanguageExtractor == nil {
		cfg.LanguageExtractor = func(ctx handler.Context) string {
			if lang, ok := GetLanguage(ctx); ok && lang != "" {
				return lang
			}
			return i18n.ParseAcceptLanguage(ctx.Request().Header.Get("Accept-Language"), cfg.I18n.Languages())
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			lang := cfg.LanguageExtractor(ctx)
			if lang == "" {
				lang = cfg.FallbackLanguage
			}
			ctx.SetValue(i18nTranslatorContextKey{}, i18n.NewTranslator(cfg.I18n, lang, cfg.Namespace))
			return next(ctx)
		}
	}
}

// GetTranslator returns the translator stored by the i18n middleware.
func GetTranslator(ctx context.Context) (*i18n.Translator, bool) {
	tr, ok := ctx.Value(i18nTranslatorContextKey{}).(*i18n.Translator)
	return tr, ok
}
