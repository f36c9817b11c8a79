package identity

import "context"

// Resolver looks up user identities in the external account service. It is
// the only doorway between the score ledger and account data.
type Resolver interface {
	// ResolveEmail maps an email address to a user id. The second return is
	// false when no account matches.
	ResolveEmail(ctx context.Context, email string) (string, bool, error)
	// FetchUsersByIDs returns the users that exist; unknown ids are omitted,
	// never fabricated.
	FetchUsersByIDs(ctx context.Context, ids []string) (map[string]User, error)
}
