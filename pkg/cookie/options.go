package cookie

import "net/http"

// Options holds the cookie attributes applied on write.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides a single cookie attribute.
type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets cookie lifetime in seconds. Negative values expire the
// cookie immediately, zero means session-scoped.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(mode http.SameSite) Option {
	return func(o *Options) { o.SameSite = mode }
}

func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
