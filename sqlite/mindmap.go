package sqlite

import (
	"encoding/json"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/onokeee/mindmap"
)

type mindmapRecord struct {
	ID     int    `gorm:"primary_key"`
	UserID int    `gorm:"not null"`
	Name   string `gorm:"not null"`
	Data   string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (mindmapRecord) TableName() string { return "mindmaps" }

func (r mindmapRecord) toDomain() *mindmap.Mindmap {
	return &mindmap.Mindmap{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Data:      json.RawMessage(r.Data),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// MindmapStore is used to store and retrieve mindmaps from a sqlite database.
type MindmapStore struct {
	Driver *Driver
}

func (s *MindmapStore) Get(userID, id int) (*mindmap.Mindmap, error) {
	var rec mindmapRecord
	err := s.Driver.db.Where("id = ? AND user_id = ?", id, userID).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, mindmap.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return rec.toDomain(), nil
}

func (s *MindmapStore) List(userID int) ([]mindmap.MindmapInfo, error) {
	var recs []mindmapRecord
	err := s.Driver.db.
		Select("id, name, updated_at").
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	infos := make([]mindmap.MindmapInfo, len(recs))
	for i, rec := range recs {
		infos[i] = mindmap.MindmapInfo{
			ID:        rec.ID,
			Name:      rec.Name,
			UpdatedAt: rec.UpdatedAt,
		}
	}
	return infos, nil
}

func (s *MindmapStore) Upsert(m *mindmap.Mindmap) error {
	if m.ID <= 0 {
		return s.insert(m)
	}
	return s.update(m)
}

func (s *MindmapStore) insert(m *mindmap.Mindmap) error {
	rec := mindmapRecord{
		UserID: m.UserID,
		Name:   m.Name,
		Data:   string(m.Data),
	}
	if err := s.Driver.db.Create(&rec).Error; isDuplicate(err) {
		return mindmap.ErrDuplicateName
	} else if err != nil {
		return err
	}

	m.ID = rec.ID
	m.CreatedAt = rec.CreatedAt
	m.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *MindmapStore) update(m *mindmap.Mindmap) error {
	// The predicate includes the owner: updating a map the user does not own
	// touches zero rows and reads as not found.
	res := s.Driver.db.
		Model(&mindmapRecord{}).
		Where("id = ? AND user_id = ?", m.ID, m.UserID).
		Updates(map[string]interface{}{
			"name":       m.Name,
			"data":       string(m.Data),
			"updated_at": time.Now().UTC(),
		})
	if isDuplicate(res.Error) {
		return mindmap.ErrDuplicateName
	} else if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mindmap.ErrNotFound
	}

	var rec mindmapRecord
	if err := s.Driver.db.First(&rec, "id = ?", m.ID).Error; err != nil {
		return err
	}
	m.CreatedAt = rec.CreatedAt
	m.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *MindmapStore) Delete(userID, id int) (bool, error) {
	res := s.Driver.db.Where("id = ? AND user_id = ?", id, userID).Delete(&mindmapRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
