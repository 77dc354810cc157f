package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/onokeee/mindmap"
)

var (
	userBucket = []byte("users")
	// usernameBucket indexes username -> user id and enforces username
	// uniqueness.
	usernameBucket = []byte("usernames")
)

type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(id int) (*mindmap.User, error) {
	var user *mindmap.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(userBucket).Get(itob(id))
		if data == nil {
			return nil
		}

		user = &mindmap.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, mindmap.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetByUsername(username string) (*mindmap.User, error) {
	var user *mindmap.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(usernameBucket).Get([]byte(username))
		if id == nil {
			return nil
		}

		data := tx.Bucket(userBucket).Get(id)
		if data == nil {
			return fmt.Errorf("dangling username index entry %q", username)
		}

		user = &mindmap.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, mindmap.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) Upsert(user *mindmap.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		users := tx.Bucket(userBucket)
		usernames := tx.Bucket(usernameBucket)

		if user.ID <= 0 {
			if usernames.Get([]byte(user.Username)) != nil {
				return mindmap.ErrDuplicateName
			}

			id, err := users.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			user.ID = int(id)
			user.CreatedAt = time.Now().UTC()
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		if err := usernames.Put([]byte(user.Username), itob(user.ID)); err != nil {
			return err
		}
		return users.Put(itob(user.ID), data)
	})
}

func (s *UserStore) List() ([]*mindmap.User, error) {
	var users []*mindmap.User

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(userBucket).Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user mindmap.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}
