package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/storage/database"
)

// Counts describes one record as {subjectNumber, attended, missed}.
type Counts [3]int

func CreateStudent(t *testing.T, name string, counts ...Counts) *attendance.Student {
	t.Helper()
	s := attendance.NewStudent(name)
	for _, c := range counts {
		rec := attendance.NewRecord(c[0])
		if err := rec.SetAttendance(c[1], c[2]); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
		s.AddRecord(rec)
	}
	return s
}

// Shape flattens `roster` into {name: records} pairs for comparisons.
func Shape(roster *attendance.Roster) []StudentShape {
	shapes := make([]StudentShape, 0, roster.Len())
	for _, s := range roster.Students() {
		shape := StudentShape{Name: s.Name}
		for _, rec := range s.Records {
			shape.Records = append(shape.Records, Counts{rec.SubjectNumber, rec.Attended, rec.Missed})
		}
		shapes = append(shapes, shape)
	}
	return shapes
}

type StudentShape struct {
	Name    string
	Records []Counts
}

// PrepareDB connects to TEST_DATABASE_URL and migrates it, or skips the test when it is unset.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.OpenURL("postgres", dsn)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Ping(ctx, db, 5); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err := database.Migrate(ctx, db.DB); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}
