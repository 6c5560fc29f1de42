package saucedb

import (
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const dbFilename = "sauce.db"

// DB wraps the bolt database holding all persistent dispenser state.
type DB struct {
	*bbolt.DB
}

// Open opens or creates sauce.db inside the given data directory.
func Open(dataDir string) (*DB, error) {
	db, err := bbolt.Open(filepath.Join(dataDir, dbFilename), 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
