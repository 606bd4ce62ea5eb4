package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// WithTOML loads every "<lang>.toml" file in dir of fsys. Each top-level
// table is a namespace:
//
//	# es.toml
//	[site]
//	welcome = "Bienvenido a %{app}"
//
//	[site.articles]
//	one = "%{count} artículo"
//	other = "%{count} artículos"
func WithTOML(fsys fs.FS, dir string) Option {
	return func(i *I18n) error {
		files, err := fs.Glob(fsys, path.Join(dir, "*.toml"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		for _, file := range files {
			if err := i.loadTOML(fsys, file); err != nil {
				return err
			}
		}
		return nil
	}
}

func (i *I18n) loadTOML(fsys fs.FS, file string) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, file, err)
	}

	lang := strings.TrimSuffix(path.Base(file), ".toml")
	for namespace, messages := range doc {
		table, ok := messages.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s: %q", ErrNamespaceNotMap, file, namespace)
		}
		if err := WithTranslations(lang, namespace, table)(i); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}
