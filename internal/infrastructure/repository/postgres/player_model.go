package postgres

import "github.com/scorepadhq/scorepad/internal/domain/player"

type playerTableModel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: unixToTime(m.CreatedAt),
	}
}

func playerToInsertModel(p player.Player) playerTableModel {
	return playerTableModel{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: timeToUnix(p.CreatedAt),
	}
}
