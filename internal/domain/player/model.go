package player

import "time"

// Player is a durable identity in the registry. Players outlive any single
// game set and are referenced by id everywhere else.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
