package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	qb "github.com/scorepadhq/scorepad/internal/platform/querybuilder"
)

// GameSetRepository soft-deletes rows. Reads filter on deleted_at so a
// removed set disappears from the API while its history stays auditable.
type GameSetRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewGameSetRepository(db *sqlx.DB) *GameSetRepository {
	return &GameSetRepository{db: db, now: time.Now}
}

func (r *GameSetRepository) Create(ctx context.Context, set gameset.GameSet) error {
	query, args, err := qb.InsertModel("game_sets", gameSetToInsertModel(set), "")
	if err != nil {
		return fmt.Errorf("build insert game set query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game set: %w", err)
	}
	return nil
}

func (r *GameSetRepository) GetByID(ctx context.Context, setID string) (gameset.GameSet, bool, error) {
	query, args, err := qb.Select("*").
		From("game_sets").
		Where(qb.Eq("id", setID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return gameset.GameSet{}, false, fmt.Errorf("build get game set query: %w", err)
	}

	var row gameSetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameset.GameSet{}, false, nil
		}
		return gameset.GameSet{}, false, fmt.Errorf("get game set: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameSetRepository) List(ctx context.Context) ([]gameset.GameSet, error) {
	query, args, err := qb.Select("*").
		From("game_sets").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game sets query: %w", err)
	}

	var rows []gameSetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game sets: %w", err)
	}

	out := make([]gameset.GameSet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameSetRepository) UpdateAdmins(ctx context.Context, setID string, adminIDs []string) (gameset.GameSet, error) {
	return r.updateArrayColumn(ctx, setID, "admin_ids", adminIDs)
}

func (r *GameSetRepository) UpdatePlayers(ctx context.Context, setID string, playerIDs []string) (gameset.GameSet, error) {
	return r.updateArrayColumn(ctx, setID, "player_ids", playerIDs)
}

func (r *GameSetRepository) updateArrayColumn(ctx context.Context, setID, column string, ids []string) (gameset.GameSet, error) {
	query, args, err := qb.Update("game_sets").
		Set(column, pq.StringArray(ids)).
		Where(qb.Eq("id", setID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("build update %s query: %w", column, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("update game set %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("update game set %s affected rows: %w", column, err)
	}
	if affected == 0 {
		return gameset.GameSet{}, fmt.Errorf("game set %s not found", setID)
	}

	set, found, err := r.GetByID(ctx, setID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	if !found {
		return gameset.GameSet{}, fmt.Errorf("game set %s not found", setID)
	}
	return set, nil
}

func (r *GameSetRepository) Delete(ctx context.Context, setID string) error {
	query, args, err := qb.Update("game_sets").
		Set("deleted_at", r.now().UTC().Unix()).
		Where(qb.Eq("id", setID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game set query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete game set: %w", err)
	}
	return nil
}
