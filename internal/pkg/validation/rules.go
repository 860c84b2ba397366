package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Account field limits
var (
	EmailPattern = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`
	PhonePattern = `^\+?[0-9 \-()]+$`

	UsernameMinLength = 2
	UsernameMaxLength = 32
	FullNameMinLength = 2
	FullNameMaxLength = 30
	PhoneMinLength    = 7
	PhoneMaxLength    = 16
	PasswordMinLength = 2
	PasswordMaxLength = 64
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// StringValidation validates one string field
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new required string validation
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithLength sets the allowed length range in characters
func (v *StringValidation) WithLength(min, max int) *StringValidation {
	v.MinLen = min
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate returns a user-facing message describing the first violated rule, or ""
func (v *StringValidation) Validate() string {
	value := strings.TrimSpace(v.Value)
	if value == "" {
		if v.Required {
			return fmt.Sprintf("%s is required", v.Field)
		}
		return ""
	}

	n := utf8.RuneCountInString(value)
	if v.MinLen > 0 && n < v.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", v.Field, v.MinLen)
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen)
	}

	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return fmt.Sprintf("%s has an invalid format", v.Field)
	}

	return ""
}

// First runs the validations in order and returns the first failure message
func First(validations ...*StringValidation) string {
	for _, v := range validations {
		if msg := v.Validate(); msg != "" {
			return msg
		}
	}
	return ""
}

// Account rules shared by registration and profile updates

func Username(value string) *StringValidation {
	return NewStringValidation("username", value).WithLength(UsernameMinLength, UsernameMaxLength)
}

func Email(value string) *StringValidation {
	return NewStringValidation("email", value).WithPattern(CompiledPatterns.Email)
}

func FullName(value string) *StringValidation {
	return NewStringValidation("fullName", value).WithLength(FullNameMinLength, FullNameMaxLength)
}

func PhoneNumber(value string) *StringValidation {
	return NewStringValidation("phoneNumber", value).
		WithLength(PhoneMinLength, PhoneMaxLength).
		WithPattern(CompiledPatterns.Phone)
}

func Password(value string) *StringValidation {
	return NewStringValidation("password", value).WithLength(PasswordMinLength, PasswordMaxLength)
}
