package postgres

import "github.com/scorepadhq/scorepad/internal/domain/ledger"

type scoreEntryTableModel struct {
	ID          string `db:"id"`
	GameSetID   string `db:"game_set_id"`
	PlayerID    string `db:"player_id"`
	RoundNumber int    `db:"round_number"`
	Score       int    `db:"score"`
	CreatorID   string `db:"creator_id"`
	CreatedAt   int64  `db:"created_at"`
}

func (m scoreEntryTableModel) toDomain() ledger.ScoreEntry {
	return ledger.ScoreEntry{
		ID:          m.ID,
		GameSetID:   m.GameSetID,
		PlayerID:    m.PlayerID,
		RoundNumber: m.RoundNumber,
		Score:       m.Score,
		CreatorID:   m.CreatorID,
		CreatedAt:   unixToTime(m.CreatedAt),
	}
}

func scoreEntryToInsertModel(e ledger.ScoreEntry) scoreEntryTableModel {
	return scoreEntryTableModel{
		ID:          e.ID,
		GameSetID:   e.GameSetID,
		PlayerID:    e.PlayerID,
		RoundNumber: e.RoundNumber,
		Score:       e.Score,
		CreatorID:   e.CreatorID,
		CreatedAt:   timeToUnix(e.CreatedAt),
	}
}
