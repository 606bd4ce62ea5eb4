package validator

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sagetools/sagekit/pkg/slug"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func newError(field, message, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// Required fails for blank strings.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MinLenString fails when value has fewer than n runes.
func MinLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= n },
		Error: newError(field, fmt.Sprintf("must be at least %d characters long", n),
			"validation.min_length", map[string]any{"min": n}),
	}
}

// MaxLenString fails when value has more than n runes.
func MaxLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", n),
			"validation.max_length", map[string]any{"max": n}),
	}
}

// InList fails when value is not one of list.
func InList(field, value string, list []string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(list, value) },
		Error: newError(field, "must be one of: "+strings.Join(list, ", "),
			"validation.in", map[string]any{"values": strings.Join(list, ", ")}),
	}
}

// ValidUUID fails for strings that are not a UUID.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}

// ValidSlug fails for strings that are not a well-formed slug.
func ValidSlug(field, value string, allowUnicode bool) Rule {
	return Rule{
		Check: func() bool { return slug.IsValid(value, allowUnicode) },
		Error: newError(field, "must contain only letters, numbers, hyphens and underscores",
			"validation.slug", nil),
	}
}

// ValidTimezone fails for names that are not in the IANA time zone database.
func ValidTimezone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" || strings.EqualFold(value, "local") {
				return false
			}
			_, err := time.LoadLocation(value)
			return err == nil
		},
		Error: newError(field, "must be a known time zone", "validation.timezone", nil),
	}
}

var nameRegex = regexp.MustCompile(`^\pL+([ '\-]\pL+)*$`)

// ValidName accepts personal names: letters separated by single spaces,
// hyphens or apostrophes, e.g. "Mary-Jane O'Connor".
func ValidName(field, value string) Rule {
	return Rule{
		Check: func() bool { return nameRegex.MatchString(value) },
		Error: newError(field, "must contain only letters, spaces, hyphens and apostrophes",
			"validation.name", nil),
	}
}

// HalfStep fails unless value lies in [lo, hi] and is a multiple of 0.5.
func HalfStep(field string, value, lo, hi float64) Rule {
	return Rule{
		Check: func() bool {
			return value >= lo && value <= hi && math.Mod(value*2, 1) == 0
		},
		Error: newError(field, fmt.Sprintf("must be between %g and %g in half-point increments", lo, hi),
			"validation.half_step", map[string]any{"min": lo, "max": hi}),
	}
}

// MatchesRegex fails when value does not match pattern. An invalid pattern
// always fails.
func MatchesRegex(field, value, pattern, description string) Rule {
	re, err := regexp.Compile(pattern)
	return Rule{
		Check: func() bool { return err == nil && re.MatchString(value) },
		Error: newError(field, "must match "+description,
			"validation.regex", map[string]any{"pattern": description}),
	}
}
