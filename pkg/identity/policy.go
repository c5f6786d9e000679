package identity

import "fmt"

// DuplicateEmailPolicy is the configured rule for handling an external
// email that matches an existing local account. Global, read at
// reconciliation time; it never changes mid-flow.
type DuplicateEmailPolicy string

const (
	// PolicyAllowDuplicate signs the user into the existing account with
	// the matching email without recording a provider link on it.
	PolicyAllowDuplicate DuplicateEmailPolicy = "allow"
	// PolicyBlockAndAdvise refuses registration when the email already
	// belongs to an account that was not created via this provider
	// identity, advising the user to sign in with the existing account.
	PolicyBlockAndAdvise DuplicateEmailPolicy = "block"
	// PolicyMergeIntoExisting records the external identity as a linked
	// identity on the existing account and signs in.
	PolicyMergeIntoExisting DuplicateEmailPolicy = "merge"
)

// ParseDuplicateEmailPolicy accepts the policy names and, for
// compatibility with older deployments, their legacy numeric values
// (0=allow, 1=block, 2=merge).
func ParseDuplicateEmailPolicy(s string) (DuplicateEmailPolicy, error) {
	switch s {
	case string(PolicyAllowDuplicate), "0":
		return PolicyAllowDuplicate, nil
	case string(PolicyBlockAndAdvise), "1":
		return PolicyBlockAndAdvise, nil
	case string(PolicyMergeIntoExisting), "2":
		return PolicyMergeIntoExisting, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
