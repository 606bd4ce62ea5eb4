package locale

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultCookieName is used when Config.CookieName is empty.
const DefaultCookieName = "lang"

// DefaultExcludedPrefixes are the paths that bypass prefix rewriting.
var DefaultExcludedPrefixes = []string{"/set-language/", "/i18n/"}

// Config describes the supported languages and cookie. Build it in code, from
// TOML with LoadTOML, or from the environment through EnvConfig.
type Config struct {
	Languages        Languages `toml:"languages"`
	Default          string    `toml:"default"`
	CookieName       string    `toml:"cookie_name"`
	ExcludedPrefixes []string  `toml:"excluded_prefixes"`
}

// EnvConfig is the environment form of Config, loaded with config.Load.
// LOCALE_LANGUAGES is a comma-separated list of code[:name] pairs.
type EnvConfig struct {
	Languages        string   `env:"LOCALE_LANGUAGES" envDefault:"en:English"`
	Default          string   `env:"LOCALE_DEFAULT"`
	CookieName       string   `env:"LOCALE_COOKIE_NAME" envDefault:"lang"`
	ExcludedPrefixes []string `env:"LOCALE_EXCLUDED_PREFIXES" envDefault:"/set-language/,/i18n/" envSeparator:","`
}

// Config converts the environment values into a Config.
func (e EnvConfig) Config() Config {
	var langs Languages
	_ = langs.UnmarshalText([]byte(e.Languages))
	return Config{
		Languages:        langs,
		Default:          e.Default,
		CookieName:       e.CookieName,
		ExcludedPrefixes: e.ExcludedPrefixes,
	}
}

type tomlFile struct {
	Locale *Config `toml:"locale"`
	Config
}

// LoadTOML reads a Config from path. Settings may live at the top level or
// under a [locale] table.
func LoadTOML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}
	return ParseTOML(string(data))
}

// ParseTOML decodes a Config from TOML text.
func ParseTOML(data string) (Config, error) {
	var f tomlFile
	if _, err := toml.Decode(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}
	if f.Locale != nil {
		return *f.Locale, nil
	}
	return f.Config, nil
}

// normalize validates cfg and fills defaults. Codes are lowercased and
// canonicalized with x/text; missing names fall back to the language's own
// name for itself.
func (cfg Config) normalize() (Config, error) {
	if len(cfg.Languages) == 0 {
		return Config{}, ErrNoLanguages
	}

	out := Config{
		Languages:  make(Languages, 0, len(cfg.Languages)),
		CookieName: cfg.CookieName,
	}
	if out.CookieName == "" {
		out.CookieName = DefaultCookieName
	}

	seen := make(map[string]bool, len(cfg.Languages))
	for _, l := range cfg.Languages {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		tag, err := language.Parse(code)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, l.Code)
		}
		if seen[code] {
			return Config{}, fmt.Errorf("%w: %q", ErrDuplicateLanguage, code)
		}
		seen[code] = true

		name := strings.TrimSpace(l.Name)
		if name == "" {
			name = display.Self.Name(tag)
		}
		if name == "" {
			name = code
		}
		out.Languages = append(out.Languages, Language{Code: code, Name: name})
	}

	out.Default = strings.ToLower(strings.TrimSpace(cfg.Default))
	if out.Default == "" {
		out.Default = out.Languages[0].Code
	}
	if !seen[out.Default] {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDefault, cfg.Default)
	}

	prefixes := cfg.ExcludedPrefixes
	if prefixes == nil {
		prefixes = DefaultExcludedPrefixes
	}
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidPrefix, p)
		}
		out.ExcludedPrefixes = append(out.ExcludedPrefixes, p)
	}

	return out, nil
}

// Validate reports configuration errors without building a Rewriter.
func (cfg Config) Validate() error {
	_, err := cfg.normalize()
	return err
}

// IsConfigError reports whether err came from configuration validation.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoLanguages) ||
		errors.Is(err, ErrInvalidLanguage) ||
		errors.Is(err, ErrDuplicateLanguage) ||
		errors.Is(err, ErrUnknownDefault) ||
		errors.Is(err, ErrInvalidPrefix) ||
		errors.Is(err, ErrConfigFile)
}
