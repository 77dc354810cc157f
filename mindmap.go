package mindmap

import (
	"encoding/json"
	"errors"
	"time"
)

// DefaultName is given to maps saved without a name.
const DefaultName = "Untitled Map"

var (
	// ErrNotFound is returned by stores when a record does not exist for the
	// caller. A map owned by another user is reported the same way.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a user already has a map (or the
	// system a user) with the requested name.
	ErrDuplicateName = errors.New("name already used")
)

type Mindmap struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`

	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MindmapInfo is the listing view of a map: no payload.
type MindmapInfo struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MindmapStore gives access to the maps of a user. Every method is scoped to
// a user id: a caller can never see nor touch another user's maps.
type MindmapStore interface {
	// Get returns the map with the given id if it belongs to the user,
	// ErrNotFound otherwise.
	Get(userID, id int) (*Mindmap, error)
	// List returns the user's maps, most recently updated first.
	List(userID int) ([]MindmapInfo, error)
	// Upsert inserts m when m.ID is zero, assigning the id, and updates the
	// map in place otherwise. Updating a map the user does not own is
	// ErrNotFound. Inserting or renaming onto a name the user already has is
	// ErrDuplicateName.
	Upsert(m *Mindmap) error
	// Delete removes the map and reports whether a record was removed.
	Delete(userID, id int) (bool, error)
}
