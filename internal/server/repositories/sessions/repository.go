// Package sessions declares the repository contract for the per-user list of
// live session tokens. Membership in this list is what keeps a token valid;
// removal is revocation.
package sessions

import "context"

// Repository defines operations over session rows. Add and Delete are single
// row writes, so concurrent logins and logouts for the same user never lose
// updates.
type Repository interface {
	// Add records token as a live session of userID under the given access class.
	Add(ctx context.Context, userID string, access string, token string) error

	// Exists reports whether the exact token is currently a live session of
	// userID with the given access class.
	Exists(ctx context.Context, userID string, access string, token string) (bool, error)

	// Delete removes the session row matching userID and token. Deleting an
	// absent token is not an error.
	Delete(ctx context.Context, userID string, token string) error
}
