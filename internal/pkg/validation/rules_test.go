package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRules(t *testing.T) {
	tests := []struct {
		name    string
		rule    *StringValidation
		wantMsg string
	}{
		{"valid username", Username("jo"), ""},
		{"short username", Username("j"), "username must be at least 2 characters"},
		{"long username", Username(strings.Repeat("a", 33)), "username must be at most 32 characters"},
		{"missing email", Email("  "), "email is required"},
		{"bad email", Email("nope"), "email has an invalid format"},
		{"mixed case email", Email("John@Example.COM"), ""},
		{"phone ok", PhoneNumber("+1 555 1234"), ""},
		{"phone letters", PhoneNumber("call-me-now"), "phoneNumber has an invalid format"},
		{"phone short", PhoneNumber("12345"), "phoneNumber must be at least 7 characters"},
		{"full name unicode", FullName("Çağ Öz"), ""},
		{"password long", Password(strings.Repeat("x", 65)), "password must be at most 64 characters"},
		{"optional empty", Password("").WithRequired(false), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.rule.Validate())
		})
	}
}

func TestFirst(t *testing.T) {
	assert.Equal(t, "", First(Username("alice"), Email("a@b.io")))
	assert.Equal(t, "email has an invalid format", First(Username("alice"), Email("x"), Password("")))
}
