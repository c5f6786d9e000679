package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/socialauth/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "Jane@Example.COM", want: "jane@example.com"},
		{input: "  jane@example.com  ", want: "jane@example.com"},
		{input: "\tJANE@EXAMPLE.COM\n", want: "jane@example.com"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "Jane  Doe", want: "Jane Doe"},
		{input: "  Jane \t Doe \n", want: "Jane Doe"},
		{input: "Jane", want: "Jane"},
		{input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sanitizer.CollapseWhitespace(tt.input))
		})
	}
}
