// Package identity reconciles external provider profiles against local
// accounts.
//
// Reconciliation is identity-link-first: an account already linked to the
// presenting (provider, provider user id) pair is an idempotent re-login
// regardless of the duplicate-email policy. Only when no link exists does
// the configured DuplicateEmailPolicy decide what happens to an email that
// already belongs to a local account: reuse it (allow), adopt the identity
// onto it (merge), or refuse and advise signing in with the existing
// account (block).
//
// Account storage is pluggable behind AccountStore; PostgreSQL, MongoDB,
// and in-memory implementations ship with the package. Stores enforce
// email uniqueness themselves, which lets the reconciler resolve the
// check-then-act race between concurrent first logins with a single
// re-read instead of a lock.
package identity
