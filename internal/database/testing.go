package database

import (
	"fmt"
	"sync/atomic"
)

var memSeq atomic.Int64

// UseMemory points DB at a fresh, migrated in-memory SQLite database and
// returns a function that closes it. Each call gets its own database.
func UseMemory() (func(), error) {
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", memSeq.Add(1))

	db, err := Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}

	prev := DB
	DB = db
	return func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		DB = prev
	}, nil
}
