package site

import (
	"embed"
	"log/slog"

	"github.com/sagetools/sagekit/core/i18n"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/logger"
)

// translationNamespace holds page text and validation messages.
const translationNamespace = "site"

//go:embed translations/*.toml
var translations embed.FS

// newTranslations loads the embedded catalogs. Languages configured for the
// rewriter but missing a catalog fall back to the default language.
func newTranslations(rw *locale.Rewriter, log *slog.Logger) (*i18n.I18n, error) {
	return i18n.New(
		i18n.WithDefaultLanguage(rw.Default()),
		i18n.WithLanguages(rw.Languages().Codes()...),
		i18n.WithTOML(translations, "translations"),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			log.Warn("missing translation",
				logger.Group("i18n",
					logger.Language(lang),
					logger.Key("namespace", namespace),
					logger.Key("key", key),
				),
			)
		}),
	)
}
