package utils

import (
	"cmp"
	"fmt"
	"regexp"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty validates that a string is not empty
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{Field: field, Value: value, Message: "cannot be empty"}
		}
		return nil
	}
}

// Optional applies validator only to non-empty strings
func Optional(validator Validator[string]) Validator[string] {
	return func(value string) error {
		if value == "" {
			return nil
		}
		return validator(value)
	}
}

// MatchesRegex validates that a string matches a regex pattern
func MatchesRegex(field, pattern, description string) Validator[string] {
	regex := regexp.MustCompile(pattern)
	return func(value string) error {
		if !regex.MatchString(value) {
			return ValidationError{Field: field, Value: value, Message: fmt.Sprintf("%q is not %s", value, description)}
		}
		return nil
	}
}

// Positive validates that a number is greater than zero
func Positive[T cmp.Ordered](field string) Validator[T] {
	return func(value T) error {
		var zero T
		if value <= zero {
			return ValidationError{Field: field, Value: value, Message: fmt.Sprintf("must be positive, got %v", value)}
		}
		return nil
	}
}

// SliceNotEmpty validates that a slice has at least one element
func SliceNotEmpty[T any](field string) Validator[[]T] {
	return func(value []T) error {
		if len(value) == 0 {
			return ValidationError{Field: field, Value: value, Message: "must not be empty"}
		}
		return nil
	}
}

// ValidateEach applies itemValidator to every element
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(values []T) error {
		for i, v := range values {
			if err := itemValidator(v); err != nil {
				return ValidationError{Field: fmt.Sprintf("%s[%d]", field, i), Value: v, Message: err.Error()}
			}
		}
		return nil
	}
}
