package gateway

import "time"

// Config holds the gateway's environment configuration.
type Config struct {
	CallbackURL     string        `env:"SOCIALAUTH_CALLBACK_URL"`                        // CallbackURL pins the fixed absolute callback URL; derived from the request host when empty.
	CookieName      string        `env:"SOCIALAUTH_FLOW_COOKIE" envDefault:"sa_flow"`    // CookieName is the flow-session cookie name.
	CookieSecret    string        `env:"SOCIALAUTH_COOKIE_SECRET,required"`              // CookieSecret signs the flow-session cookie; minimum 32 chars.
	FlowTTL         time.Duration `env:"SOCIALAUTH_FLOW_TTL" envDefault:"15m"`           // FlowTTL bounds how long a login may stay parked at the provider.
	SuccessURL      string        `env:"SOCIALAUTH_SUCCESS_URL" envDefault:"/"`          // SuccessURL is where the browser lands after a completed login.
	DuplicateEmails string        `env:"SOCIALAUTH_DUPLICATE_EMAILS" envDefault:"block"` // DuplicateEmails selects the duplicate-email policy: allow, block, or merge.
	SecureCookies   bool          `env:"SOCIALAUTH_SECURE_COOKIES" envDefault:"true"`    // SecureCookies marks the flow cookie Secure; disable for local http.
}
