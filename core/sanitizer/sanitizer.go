package sanitizer

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// TagName is the struct tag holding a comma-separated rule list,
// e.g. `sanitize:"strip_html,single_line,max:200"`.
const TagName = "sanitize"

var (
	mu    sync.RWMutex
	rules = map[string]func(string) string{
		"trim":        Trim,
		"lower":       strings.ToLower,
		"single_line": SingleLine,
		"strip_html":  StripHTML,
		"no_control":  RemoveControlChars,
		"text": func(s string) string {
			return SingleLine(RemoveControlChars(s))
		},
	}
)

// Register adds or replaces a named rule.
func Register(name string, fn func(string) string) {
	mu.Lock()
	defer mu.Unlock()
	rules[name] = fn
}

// Apply runs the rules in tag against s, left to right.
// "max:N" truncates to N runes.
func Apply(s, tag string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if arg, ok := strings.CutPrefix(name, "max:"); ok {
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return "", fmt.Errorf("%w: %q", ErrInvalidRule, name)
			}
			s = Truncate(s, n)
			continue
		}
		fn, ok := rules[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		s = fn(s)
	}
	return s, nil
}

// Struct sanitizes every tagged string field of the struct v points to,
// descending into nested structs and string slices.
func Struct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return walk(rv.Elem())
}

func walk(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			out, err := Apply(field.String(), tag)
			if err != nil {
				return fmt.Errorf("%s: %w", rt.Field(i).Name, err)
			}
			field.SetString(out)

		case reflect.Slice:
			if tag == "" || field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := range field.Len() {
				out, err := Apply(field.Index(j).String(), tag)
				if err != nil {
					return fmt.Errorf("%s[%d]: %w", rt.Field(i).Name, j, err)
				}
				field.Index(j).SetString(out)
			}

		case reflect.Struct:
			if err := walk(field); err != nil {
				return err
			}

		case reflect.Pointer:
			if field.IsNil() || field.Elem().Kind() != reflect.Struct {
				continue
			}
			if err := walk(field.Elem()); err != nil {
				return err
			}
		}
	}
	return nil
}
