package gameset

import "context"

type Repository interface {
	Create(ctx context.Context, set GameSet) error
	GetByID(ctx context.Context, setID string) (GameSet, bool, error)
	// List returns sets ordered by creation time descending.
	List(ctx context.Context) ([]GameSet, error)
	UpdateAdmins(ctx context.Context, setID string, adminIDs []string) (GameSet, error)
	UpdatePlayers(ctx context.Context, setID string, playerIDs []string) (GameSet, error)
	Delete(ctx context.Context, setID string) error
}
