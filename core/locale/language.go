package locale

import (
	"fmt"
	"strings"
)

// Language is a supported language code with its display name.
type Language struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// Languages is an ordered list of supported languages. It decodes from
// "en:English,fr:Français" strings (environment) as well as TOML arrays of
// tables or plain string arrays.
type Languages []Language

// Codes returns the language codes in configured order.
func (l Languages) Codes() []string {
	codes := make([]string, len(l))
	for i, lang := range l {
		codes[i] = lang.Code
	}
	return codes
}

// UnmarshalText parses a comma-separated list of code[:name] pairs.
func (l *Languages) UnmarshalText(text []byte) error {
	var out Languages
	for item := range strings.SplitSeq(string(text), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, name, _ := strings.Cut(item, ":")
		out = append(out, Language{
			Code: strings.TrimSpace(code),
			Name: strings.TrimSpace(name),
		})
	}
	*l = out
	return nil
}

// UnmarshalTOML accepts a string, an array of strings, or an array of
// {code, name} tables.
func (l *Languages) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		return l.UnmarshalText([]byte(v))
	case []any:
		out := make(Languages, 0, len(v))
		for i, item := range v {
			switch entry := item.(type) {
			case string:
				code, name, _ := strings.Cut(entry, ":")
				out = append(out, Language{Code: strings.TrimSpace(code), Name: strings.TrimSpace(name)})
			case map[string]any:
				code, _ := entry["code"].(string)
				name, _ := entry["name"].(string)
				out = append(out, Language{Code: code, Name: name})
			default:
				return fmt.Errorf("%w: entry %d has type %T", ErrInvalidLanguage, i, item)
			}
		}
		*l = out
		return nil
	case []map[string]any:
		out := make(Languages, 0, len(v))
		for _, entry := range v {
			code, _ := entry["code"].(string)
			name, _ := entry["name"].(string)
			out = append(out, Language{Code: code, Name: name})
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("%w: unsupported value of type %T", ErrInvalidLanguage, data)
	}
}
