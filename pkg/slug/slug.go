// Package slug turns arbitrary display strings into URL- and
// username-safe identifiers.
package slug

import (
	"crypto/rand"
	"strings"
	"unicode"
)

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	maxLength    int
	separator    string
	suffixLength int
}

func defaultConfig() *config {
	return &config{
		maxLength: 0, // no limit
		separator: "-",
	}
}

// MaxLength sets the maximum length of the generated slug.
// If the slug exceeds this length, it will be truncated on a separator
// boundary where possible.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator character for the slug. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// WithSuffix appends a random alphanumeric suffix to reduce collision
// possibility. The suffix is separated by the configured separator.
// Example: "jane-doe-x7g3k2" (with length=6).
func WithSuffix(length int) Option {
	return func(c *config) {
		c.suffixLength = length
	}
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make generates a slug from the input string.
// Non-alphanumeric runs collapse into a single separator; the result is
// lowercase. An input with no usable characters yields an empty slug
// (before any suffix), so callers needing a guaranteed value should combine
// Make with WithSuffix or supply a fallback.
func Make(input string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	s := b.String()

	if cfg.maxLength > 0 && len(s) > cfg.maxLength {
		s = s[:cfg.maxLength]
		s = strings.TrimSuffix(s, cfg.separator)
	}

	if cfg.suffixLength > 0 {
		suffix := randomSuffix(cfg.suffixLength)
		if s == "" {
			return suffix
		}
		return s + cfg.separator + suffix
	}

	return s
}

func randomSuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the process has bigger problems;
		// fall back to a constant rather than panic in a naming helper.
		return strings.Repeat("x", length)
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}
