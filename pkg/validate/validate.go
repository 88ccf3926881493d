// Package validate provides field validators for form inputs. The
// contact controller uses Required for its emptiness rule; the rest
// cover the fields a fuller contact form carries.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator checks one field value.
type Validator interface {
	// Validate returns nil if the value is valid, or an error carrying
	// the user-facing message.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Required validates that the value is non-empty after trimming
// leading and trailing whitespace.
func Required(msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength validates that a value has at least n characters. Empty
// values pass; combine with Required for a non-empty check.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if len([]rune(value)) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength validates that a value has at most n characters.
func MaxLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if len([]rune(value)) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern validates that a value matches the given regular expression.
// Empty values pass.
func Pattern(pattern string, msg string) Validator {
	re := regexp.MustCompile(pattern)
	if msg == "" {
		msg = "Invalid format"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Email validates that the value looks like an email address. Empty
// values pass.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// All combines validators; the first failure wins.
func All(validators ...Validator) Validator {
	return ValidatorFunc(func(value string) error {
		for _, v := range validators {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}
