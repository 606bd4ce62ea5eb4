package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// TagName is the struct tag holding a semicolon-separated rule list,
// e.g. `validate:"required;max:500"`. Parameters follow a colon and are
// separated by commas.
const TagName = "validate"

// ValidatorFunc builds the Rule for one field.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required":  requiredValidator,
		"min":       minValidator,
		"max":       maxValidator,
		"len":       lenValidator,
		"in":        inValidator,
		"not_in":    notInValidator,
		"uuid":      stringValidator(ValidUUID),
		"timezone":  stringValidator(ValidTimezone),
		"name":      stringValidator(ValidName),
		"slug":      slugValidator,
		"regex":     regexValidator,
		"half_step": halfStepValidator,
	}
)

// RegisterValidator adds or replaces a named rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks every tagged field of the struct v points to and
// returns ValidationErrors when any rule fails. Untagged nested structs are
// walked, with their fields reported as "Outer.Inner". Empty optional
// values skip every rule except "required".
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	var errs ValidationErrors
	validateStruct(rv.Elem(), "", &errs)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(path, field, tag, errs)
				}
				continue
			}
			field = field.Elem()
		}

		if tag == "" {
			if field.Kind() == reflect.Struct {
				validateStruct(field, path, errs)
			}
			continue
		}
		validateField(path, field, tag, errs)
	}
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	empty := !field.IsValid() || field.IsZero()
	for raw := range strings.SplitSeq(tag, ";") {
		name, paramStr, _ := strings.Cut(strings.TrimSpace(raw), ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if empty && name != "required" {
			continue
		}

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[name]
		if !ok {
			errs.Add(newError(path, fmt.Sprintf("unknown validation rule %q", name), "validation.unknown_rule", nil))
			continue
		}
		if rule := fn(path, field, params); !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

func stringValidator(fn func(field, value string) Rule) ValidatorFunc {
	return func(field string, value reflect.Value, _ []string) Rule {
		if value.Kind() != reflect.String {
			return pass()
		}
		return fn(field, value.String())
	}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() == reflect.String {
		return Required(field, value.String())
	}
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.Invalid:
				return false
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	return boundValidator(field, value, params, true)
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	return boundValidator(field, value, params, false)
}

// boundValidator implements min and max: rune count for strings, length for
// collections and the value itself for numbers.
func boundValidator(field string, value reflect.Value, params []string, lower bool) Rule {
	if len(params) < 1 {
		return pass()
	}
	word, key := "most", "max"
	if lower {
		word, key = "least", "min"
	}

	switch value.Kind() {
	case reflect.String:
		n, _ := strconv.Atoi(params[0])
		if lower {
			return MinLenString(field, value.String(), n)
		}
		return MaxLenString(field, value.String(), n)

	case reflect.Slice, reflect.Array, reflect.Map:
		n, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				if lower {
					return value.Len() >= n
				}
				return value.Len() <= n
			},
			Error: newError(field, fmt.Sprintf("must have at %s %d items", word, n),
				"validation."+key+"_items", map[string]any{key: n}),
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		limit, err := strconv.ParseFloat(params[0], 64)
		if err != nil {
			return pass()
		}
		v := toFloat(value)
		return Rule{
			Check: func() bool {
				if lower {
					return v >= limit
				}
				return v <= limit
			},
			Error: newError(field, fmt.Sprintf("must be at %s %g", word, limit),
				"validation."+key, map[string]any{key: limit}),
		}
	}
	return pass()
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	n, _ := strconv.Atoi(params[0])

	var length int
	switch value.Kind() {
	case reflect.String:
		length = len([]rune(value.String()))
	case reflect.Slice, reflect.Array, reflect.Map:
		length = value.Len()
	default:
		return pass()
	}
	return Rule{
		Check: func() bool { return length == n },
		Error: newError(field, fmt.Sprintf("must have length %d", n),
			"validation.len", map[string]any{"len": n}),
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return InList(field, value.String(), params)
}

func notInValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	v := value.String()
	return Rule{
		Check: func() bool { return !slices.Contains(params, v) },
		Error: newError(field, "must not be one of: "+strings.Join(params, ", "),
			"validation.not_in", map[string]any{"values": strings.Join(params, ", ")}),
	}
}

// slugValidator accepts an optional "ascii" parameter that rejects
// non-ASCII letters.
func slugValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidSlug(field, value.String(), !slices.Contains(params, "ascii"))
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	description := "pattern"
	if len(params) > 1 {
		description = params[1]
	}
	return MatchesRegex(field, value.String(), params[0], description)
}

// halfStepValidator takes optional "lo,hi" bounds, 1 and 5 by default.
func halfStepValidator(field string, value reflect.Value, params []string) Rule {
	switch value.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return pass()
	}
	lo, hi := 1.0, 5.0
	if len(params) == 2 {
		if v, err := strconv.ParseFloat(params[0], 64); err == nil {
			lo = v
		}
		if v, err := strconv.ParseFloat(params[1], 64); err == nil {
			hi = v
		}
	}
	return HalfStep(field, toFloat(value), lo, hi)
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}
