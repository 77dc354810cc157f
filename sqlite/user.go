package sqlite

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/onokeee/mindmap"
)

type userRecord struct {
	ID       int    `gorm:"primary_key"`
	Username string `gorm:"not null;unique_index"`
	Password string `gorm:"not null"`

	CreatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toDomain() *mindmap.User {
	return &mindmap.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
	}
}

type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(id int) (*mindmap.User, error) {
	var rec userRecord
	err := s.Driver.db.First(&rec, "id = ?", id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, mindmap.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return rec.toDomain(), nil
}

func (s *UserStore) GetByUsername(username string) (*mindmap.User, error) {
	var rec userRecord
	err := s.Driver.db.First(&rec, "username = ?", username).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, mindmap.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return rec.toDomain(), nil
}

func (s *UserStore) Upsert(user *mindmap.User) error {
	if user.ID <= 0 {
		rec := userRecord{
			Username: user.Username,
			Password: user.PasswordHash,
		}
		if err := s.Driver.db.Create(&rec).Error; isDuplicate(err) {
			return mindmap.ErrDuplicateName
		} else if err != nil {
			return err
		}

		user.ID = rec.ID
		user.CreatedAt = rec.CreatedAt
		return nil
	}

	res := s.Driver.db.
		Model(&userRecord{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username": user.Username,
			"password": user.PasswordHash,
		})
	if isDuplicate(res.Error) {
		return mindmap.ErrDuplicateName
	} else if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mindmap.ErrNotFound
	}
	return nil
}

func (s *UserStore) List() ([]*mindmap.User, error) {
	var recs []userRecord
	if err := s.Driver.db.Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}

	users := make([]*mindmap.User, len(recs))
	for i, rec := range recs {
		users[i] = rec.toDomain()
	}
	return users, nil
}
