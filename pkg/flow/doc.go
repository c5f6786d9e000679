// Package flow persists the state of an in-flight social login across the
// redirect round trip.
//
// A login is two separate HTTP requests with an external provider visit in
// between; no call stack survives that boundary, so the chosen provider id
// and the CSRF state are externalized here, keyed by an opaque token that
// rides a signed browser cookie. The package deliberately assumes nothing
// about the host's session technology beyond the begin/current/end
// contract.
package flow
