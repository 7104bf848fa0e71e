package inmemdb

import (
	"sync"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type (
	DB struct {
		roster *rosterTable
	}

	// rosterTable keeps private copies of the saved students so callers
	// can keep mutating their own roster after a save.
	rosterTable struct {
		t     []attendance.Student
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		roster: &rosterTable{},
	}
	return db, nil
}
