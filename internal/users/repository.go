package users

import "context"

// Directory is the user-directory contract the location core depends on.
// Reporting and grid creation only ever need an existence check; login
// additionally needs the identity lookup.
type Directory interface {
	Exists(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
