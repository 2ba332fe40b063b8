// Package validate implements the declarative request-body validator shared
// by every mutating endpoint. A Schema is an ordered list of per-field rules;
// validation stops at the first failing rule and reports a single
// human-readable message, which callers map to a 400 response.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

type Rule struct {
	Field    string
	Required bool
	// Nullable permits an explicit JSON null; remaining checks are skipped.
	Nullable bool
	String   bool
	Numeric  bool
	Boolean  bool
	MinLen   int
	// MinLenMessage overrides the default minimum-length message.
	MinLenMessage string
	Pattern       *regexp.Regexp
	// PatternMessage overrides the default pattern message.
	PatternMessage string
	Enum           []string
}

type Schema []Rule

// Error names the first field that failed and why.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validate checks a decoded JSON object against the schema. It is a pure
// function over its input; the first failing field wins.
func (s Schema) Validate(input map[string]any) error {
	for _, rule := range s {
		value, present := input[rule.Field]

		if !present {
			if rule.Required {
				return &Error{Field: rule.Field, Message: fmt.Sprintf("%s is required", rule.Field)}
			}
			continue
		}

		if value == nil {
			if rule.Nullable {
				continue
			}
			if rule.Required {
				return &Error{Field: rule.Field, Message: fmt.Sprintf("%s is required", rule.Field)}
			}
			continue
		}

		if err := rule.check(value); err != nil {
			return err
		}
	}

	return nil
}

func (r Rule) check(value any) error {
	if r.Numeric {
		switch value.(type) {
		case float64, int, int64:
		default:
			return &Error{Field: r.Field, Message: fmt.Sprintf("%s must be a number", r.Field)}
		}
		return nil
	}

	if r.Boolean {
		if _, ok := value.(bool); !ok {
			return &Error{Field: r.Field, Message: fmt.Sprintf("%s must be a boolean", r.Field)}
		}
		return nil
	}

	if !r.String && r.MinLen == 0 && r.Pattern == nil && len(r.Enum) == 0 {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return &Error{Field: r.Field, Message: fmt.Sprintf("%s must be a string", r.Field)}
	}

	if r.Required && strings.TrimSpace(str) == "" {
		return &Error{Field: r.Field, Message: fmt.Sprintf("%s is required", r.Field)}
	}

	if r.MinLen > 0 && len(str) < r.MinLen {
		message := r.MinLenMessage
		if message == "" {
			message = fmt.Sprintf("%s must be at least %d characters", r.Field, r.MinLen)
		}
		return &Error{Field: r.Field, Message: message}
	}

	if r.Pattern != nil && !r.Pattern.MatchString(str) {
		message := r.PatternMessage
		if message == "" {
			message = fmt.Sprintf("%s has an invalid format", r.Field)
		}
		return &Error{Field: r.Field, Message: message}
	}

	if len(r.Enum) > 0 {
		for _, allowed := range r.Enum {
			if str == allowed {
				return nil
			}
		}
		return &Error{Field: r.Field, Message: fmt.Sprintf("%s must be one of: %s", r.Field, strings.Join(r.Enum, ", "))}
	}

	return nil
}
