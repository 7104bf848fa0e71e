package inmemdb

import (
	"context"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type rosterRepository struct {
	db *rosterTable
}

// NewRosterRepository keeps the roster in memory for the lifetime of `db`.
func NewRosterRepository(db *DB) attendance.Repository {
	return &rosterRepository{db: db.roster}
}

func (repo *rosterRepository) SaveRoster(ctx context.Context, roster *attendance.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	students := roster.Students()
	table := make([]attendance.Student, 0, len(students))
	for _, s := range students {
		table = append(table, copyStudent(s))
	}
	repo.db.t = table
	return nil
}

func (repo *rosterRepository) LoadRoster(ctx context.Context, roster *attendance.Roster) error {
	roster.Reset()
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for i := range repo.db.t {
		s := copyStudent(&repo.db.t[i])
		roster.AddStudent(&s)
	}
	return nil
}

func copyStudent(s *attendance.Student) attendance.Student {
	cp := attendance.Student{Name: s.Name}
	if s.Records != nil {
		cp.Records = make([]*attendance.Record, 0, len(s.Records))
		for _, rec := range s.Records {
			r := *rec
			cp.Records = append(cp.Records, &r)
		}
	}
	return cp
}
