package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type (
	rosterRepository struct {
		db *sqlx.DB
	}

	studentRow struct {
		ID   int    `db:"id"`
		Name string `db:"name"`
	}

	recordRow struct {
		StudentID     int `db:"student_id"`
		SubjectNumber int `db:"subject_number"`
		Attended      int `db:"attended"`
		Missed        int `db:"missed"`
	}
)

// NewRosterRepository stores rosters in the student and attendance_record tables.
// A save replaces the whole roster; positions keep the insertion order.
func NewRosterRepository(db *sqlx.DB) attendance.Repository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) SaveRoster(ctx context.Context, roster *attendance.Roster) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewIOError("starting transaction", err)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM student`); err != nil {
		return core.NewIOError("clearing roster", err)
	}
	for pos, s := range roster.Students() {
		var id int
		err := tx.QueryRowxContext(
			ctx,
			`INSERT INTO student (position, name) VALUES ($1, $2) RETURNING id`,
			pos, s.Name,
		).Scan(&id)
		if err != nil {
			return core.NewIOError("inserting student", err)
		}
		for recPos, rec := range s.Records {
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO attendance_record (student_id, position, subject_number, attended, missed)
				VALUES ($1, $2, $3, $4, $5)`,
				id, recPos, rec.SubjectNumber, rec.Attended, rec.Missed,
			)
			if err != nil {
				return core.NewIOError("inserting attendance record", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return core.NewIOError("committing roster", err)
	}
	return nil
}

func (repo *rosterRepository) LoadRoster(ctx context.Context, roster *attendance.Roster) error {
	roster.Reset()

	var students []studentRow
	if err := repo.db.SelectContext(ctx, &students, `SELECT id, name FROM student ORDER BY position`); err != nil {
		return core.NewIOError("querying students", err)
	}
	var records []recordRow
	err := repo.db.SelectContext(
		ctx, &records,
		`SELECT student_id, subject_number, attended, missed FROM attendance_record ORDER BY student_id, position`,
	)
	if err != nil {
		return core.NewIOError("querying attendance records", err)
	}

	byID := make(map[int]*attendance.Student, len(students))
	for _, row := range students {
		s := attendance.NewStudent(row.Name)
		byID[row.ID] = s
		roster.AddStudent(s)
	}
	for _, row := range records {
		s, ok := byID[row.StudentID]
		if !ok {
			continue
		}
		rec := attendance.NewRecord(row.SubjectNumber)
		if err := rec.SetAttendance(row.Attended, row.Missed); err != nil {
			return errors.Wrapf(err, "student %q subject %d", s.Name, row.SubjectNumber)
		}
		s.AddRecord(rec)
	}
	return nil
}
