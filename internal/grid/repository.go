package grid

import "context"

// Repository persists one grid document per user.
// FindByUser returns (nil, nil) when the user has no grid yet.
type Repository interface {
	FindByUser(ctx context.Context, username string) (*Grid, error)
	Upsert(ctx context.Context, g *Grid) error
}
