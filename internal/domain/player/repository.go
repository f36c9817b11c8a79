package player

import "context"

type Repository interface {
	// List returns all players ordered alphabetically by name, ties by id.
	List(ctx context.Context) ([]Player, error)
	// GetByName matches case-insensitively on the trimmed name.
	GetByName(ctx context.Context, name string) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Player, error)
	Create(ctx context.Context, p Player) error
}
