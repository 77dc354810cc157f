package bolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/onokeee/mindmap"
)

var (
	mindmapBucket = []byte("mindmaps")
	// mindmapNameBucket indexes owner+name -> map id and doubles as the
	// per-owner uniqueness constraint: the check and the write happen in the
	// same transaction, and bolt serializes writers.
	mindmapNameBucket = []byte("mindmapNames")
)

// MindmapStore is used to store and retrieve mindmaps from a bolt database.
type MindmapStore struct {
	Driver *Driver
}

// nameKey builds the owner+name index key. The owner id is fixed-width so
// keys of one owner form a contiguous, prefix-scannable range.
func nameKey(userID int, name string) []byte {
	return append(itob(userID), []byte(name)...)
}

func (s *MindmapStore) Get(userID, id int) (*mindmap.Mindmap, error) {
	var m *mindmap.Mindmap
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(mindmapBucket).Get(itob(id))
		if data == nil {
			return nil
		}

		var mm mindmap.Mindmap
		if err := json.Unmarshal(data, &mm); err != nil {
			return err
		}

		// Someone else's map looks exactly like no map at all.
		if mm.UserID != userID {
			return nil
		}

		m = &mm
		return nil
	})
	if err != nil {
		return nil, err
	}

	if m == nil {
		return nil, mindmap.ErrNotFound
	}
	return m, nil
}

func (s *MindmapStore) List(userID int) ([]mindmap.MindmapInfo, error) {
	var infos []mindmap.MindmapInfo

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		maps := tx.Bucket(mindmapBucket)
		prefix := itob(userID)

		c := tx.Bucket(mindmapNameBucket).Cursor()
		for k, id := c.Seek(prefix); k != nil && len(k) >= len(prefix) && string(k[:len(prefix)]) == string(prefix); k, id = c.Next() {
			data := maps.Get(id)
			if data == nil {
				return fmt.Errorf("dangling name index entry %q", k)
			}

			var m mindmap.Mindmap
			if err := json.Unmarshal(data, &m); err != nil {
				return err
			}

			infos = append(infos, mindmap.MindmapInfo{
				ID:        m.ID,
				Name:      m.Name,
				UpdatedAt: m.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].UpdatedAt.Equal(infos[j].UpdatedAt) {
			return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
		}
		return infos[i].ID > infos[j].ID
	})

	return infos, nil
}

// Upsert inserts or updates a mindmap, depending on m.ID. The name index is
// kept in step in the same transaction.
func (s *MindmapStore) Upsert(m *mindmap.Mindmap) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		maps := tx.Bucket(mindmapBucket)
		names := tx.Bucket(mindmapNameBucket)

		now := time.Now().UTC()
		if m.ID <= 0 {
			if names.Get(nameKey(m.UserID, m.Name)) != nil {
				return mindmap.ErrDuplicateName
			}

			id, err := maps.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			m.ID = int(id)
			m.CreatedAt = now
		} else {
			data := maps.Get(itob(m.ID))
			if data == nil {
				return mindmap.ErrNotFound
			}

			var prev mindmap.Mindmap
			if err := json.Unmarshal(data, &prev); err != nil {
				return err
			}
			if prev.UserID != m.UserID {
				return mindmap.ErrNotFound
			}

			if prev.Name != m.Name {
				if names.Get(nameKey(m.UserID, m.Name)) != nil {
					return mindmap.ErrDuplicateName
				}
				if err := names.Delete(nameKey(m.UserID, prev.Name)); err != nil {
					return err
				}
			}
			m.CreatedAt = prev.CreatedAt
		}
		m.UpdatedAt = now

		data, err := json.Marshal(m)
		if err != nil {
			return err
		}

		if err := names.Put(nameKey(m.UserID, m.Name), itob(m.ID)); err != nil {
			return err
		}
		return maps.Put(itob(m.ID), data)
	})
}

func (s *MindmapStore) Delete(userID, id int) (bool, error) {
	deleted := false
	err := s.Driver.store.Update(func(tx *bolt.Tx) error {
		maps := tx.Bucket(mindmapBucket)

		data := maps.Get(itob(id))
		if data == nil {
			return nil
		}

		var m mindmap.Mindmap
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		if m.UserID != userID {
			return nil
		}

		if err := tx.Bucket(mindmapNameBucket).Delete(nameKey(m.UserID, m.Name)); err != nil {
			return err
		}
		if err := maps.Delete(itob(id)); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
