package postgres

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
)

type gameSetTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	CreatorID string         `db:"creator_id"`
	AdminIDs  pq.StringArray `db:"admin_ids"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	CreatedAt int64          `db:"created_at"`
	DeletedAt sql.NullInt64  `db:"deleted_at"`
}

func (m gameSetTableModel) toDomain() gameset.GameSet {
	return gameset.GameSet{
		ID:        m.ID,
		Name:      m.Name,
		CreatorID: m.CreatorID,
		AdminIDs:  append([]string(nil), m.AdminIDs...),
		PlayerIDs: append([]string(nil), m.PlayerIDs...),
		CreatedAt: unixToTime(m.CreatedAt),
	}
}

func gameSetToInsertModel(set gameset.GameSet) gameSetTableModel {
	return gameSetTableModel{
		ID:        set.ID,
		Name:      set.Name,
		CreatorID: set.CreatorID,
		AdminIDs:  pq.StringArray(set.AdminIDs),
		PlayerIDs: pq.StringArray(set.PlayerIDs),
		CreatedAt: timeToUnix(set.CreatedAt),
	}
}
