package sqlite

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // run init method
	"github.com/mattn/go-sqlite3"
)

type Driver struct {
	db *gorm.DB
}

// NewDriver opens (and creates if needed) the sqlite database at path and
// migrates the users and mindmaps tables.
func NewDriver(path string) (*Driver, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&userRecord{}, &mindmapRecord{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	// No two maps of one user may share a name.
	if err := db.Model(&mindmapRecord{}).AddUniqueIndex("idx_mindmaps_user_id_name", "user_id", "name").Error; err != nil {
		db.Close()
		return nil, err
	}

	return &Driver{db: db}, nil
}

func (d *Driver) Close() error {
	return d.db.Close()
}

// isDuplicate reports whether err is a sqlite unique-constraint violation.
func isDuplicate(err error) bool {
	sqliteErr, ok := err.(sqlite3.Error)
	return ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
