// Package provider holds the registry of external identity providers and
// resolves per-provider credentials.
//
// The registry is a read-only view over configuration: provider ids, their
// enabled flags, and display ordering. The resolver layers credential
// lookup on top and attaches the single fixed callback URL, failing loudly
// when configuration is incomplete.
//
// Neither type performs network I/O; constructing the actual OAuth client
// from resolved Credentials is the gateway package's concern.
package provider
