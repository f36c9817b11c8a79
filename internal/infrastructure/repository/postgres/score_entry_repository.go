package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	qb "github.com/scorepadhq/scorepad/internal/platform/querybuilder"
)

type ScoreEntryRepository struct {
	db *sqlx.DB
}

func NewScoreEntryRepository(db *sqlx.DB) *ScoreEntryRepository {
	return &ScoreEntryRepository{db: db}
}

func (r *ScoreEntryRepository) MaxRoundNumber(ctx context.Context, gameSetID string) (int, error) {
	const query = `SELECT COALESCE(MAX(round_number), 0) FROM score_entries WHERE game_set_id = $1`

	var maxRound int
	if err := r.db.GetContext(ctx, &maxRound, query, gameSetID); err != nil {
		return 0, fmt.Errorf("max round number: %w", err)
	}
	return maxRound, nil
}

// InsertRound writes the whole round in one statement inside a transaction.
// The unique index on (game_set_id, player_id, round_number) rejects the
// losing writer of a concurrent save, surfaced as a RoundConflictError.
func (r *ScoreEntryRepository) InsertRound(ctx context.Context, entries []ledger.ScoreEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("round entries are required")
	}

	models := make([]scoreEntryTableModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, scoreEntryToInsertModel(e))
	}
	query, args, err := qb.InsertModels("score_entries", models, "")
	if err != nil {
		return fmt.Errorf("build insert round query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return &ledger.RoundConflictError{
				GameSetID:   entries[0].GameSetID,
				RoundNumber: entries[0].RoundNumber,
			}
		}
		return fmt.Errorf("insert round: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round: %w", err)
	}
	return nil
}

func (r *ScoreEntryRepository) ListByGameSet(ctx context.Context, gameSetID string) ([]ledger.ScoreEntry, error) {
	query, args, err := qb.Select("*").
		From("score_entries").
		Where(qb.Eq("game_set_id", gameSetID)).
		OrderBy("round_number", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []scoreEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score entries: %w", err)
	}

	out := make([]ledger.ScoreEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoreEntryRepository) DeleteByGameSet(ctx context.Context, gameSetID string) error {
	query, args, err := qb.DeleteFrom("score_entries").
		Where(qb.Eq("game_set_id", gameSetID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete entries query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete score entries: %w", err)
	}
	return nil
}
