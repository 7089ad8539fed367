package forms

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule checks one constraint on a single field value. Every rule except
// Required passes on an empty value, so optional fields are only checked
// when filled in.
type Rule struct {
	check   func(string) bool
	message string
}

// Message returns the error text reported when the rule fails.
func (r Rule) Message() string { return r.message }

// Required rejects values that are empty after sanitization.
func Required(message string) Rule {
	return Rule{
		check:   func(v string) bool { return validate.Var(v, "required") == nil },
		message: message,
	}
}

// MinLen rejects non-empty values shorter than n characters.
func MinLen(n int, message string) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return Rule{
		check:   func(v string) bool { return v == "" || validate.Var(v, tag) == nil },
		message: message,
	}
}

// MaxLen rejects values longer than n characters.
func MaxLen(n int, message string) Rule {
	tag := fmt.Sprintf("max=%d", n)
	return Rule{
		check:   func(v string) bool { return validate.Var(v, tag) == nil },
		message: message,
	}
}

// Email rejects non-empty values that are not a valid address.
func Email(message string) Rule {
	return Rule{
		check:   func(v string) bool { return v == "" || validate.Var(v, "email") == nil },
		message: message,
	}
}

// URL rejects non-empty values that are not an absolute URL.
func URL(message string) Rule {
	return Rule{
		check:   func(v string) bool { return v == "" || validate.Var(v, "url") == nil },
		message: message,
	}
}

// OneOf rejects non-empty values outside the allowed set.
func OneOf(allowed []string, message string) Rule {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return Rule{
		check: func(v string) bool {
			if v == "" {
				return true
			}
			_, ok := set[v]
			return ok
		},
		message: message,
	}
}

// IntRange rejects non-empty values that are not an integer in [min, max].
func IntRange(min, max int, message string) Rule {
	return Rule{
		check: func(v string) bool {
			if v == "" {
				return true
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return false
			}
			return n >= min && n <= max
		},
		message: message,
	}
}

// Pattern rejects non-empty values not matching the expression.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{
		check:   func(v string) bool { return v == "" || re.MatchString(v) },
		message: message,
	}
}

// Field binds a name to its sanitizer and ordered rules.
type Field struct {
	Name     string
	Sanitize Sanitizer // nil means SanitizeDefault
	Rules    []Rule
}

// Schema is the declarative validation ruleset for one form.
type Schema []Field

// SanitizeAll applies each field's sanitizer to the raw values. Unknown keys
// in the input are dropped.
func (s Schema) SanitizeAll(raw map[string]string) map[string]string {
	out := make(map[string]string, len(s))
	for _, f := range s {
		sanitize := f.Sanitize
		if sanitize == nil {
			sanitize = SanitizeDefault
		}
		out[f.Name] = sanitize(raw[f.Name])
	}
	return out
}

// ValidateField checks a single already-sanitized value, returning the first
// failing rule's message or "".
func (s Schema) ValidateField(name, value string) string {
	for _, f := range s {
		if f.Name != name {
			continue
		}
		for _, rule := range f.Rules {
			if !rule.check(value) {
				return rule.message
			}
		}
		return ""
	}
	return ""
}

// Validate checks every field, collecting the first failing rule's message
// per field. An empty map means the values pass.
func (s Schema) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range s {
		for _, rule := range f.Rules {
			if !rule.check(values[f.Name]) {
				errs[f.Name] = rule.message
				break
			}
		}
	}
	return errs
}
