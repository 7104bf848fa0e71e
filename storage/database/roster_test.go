package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/storage/database"
	"github.com/trezcool/mahudhurio/tests"
)

func TestURL(t *testing.T) {
	conf := &core.Config{Database: core.DatabaseConfig{
		Engine: "postgres",
		Host:   "db.local",
		Port:   "5433",
		Name:   "mahudhurio",
		User:   "app",
	}}
	assert.Equal(t, "postgres://app:@db.local:5433/mahudhurio?sslmode=require&timezone=utc", database.URL(conf))

	conf.Database.User = ""
	conf.Database.DisableTLS = true
	assert.Equal(t, "postgres://db.local:5433/mahudhurio?sslmode=disable&timezone=utc", database.URL(conf))
}

func TestRosterRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := database.NewRosterRepository(db)
	ctx := context.Background()

	saved := attendance.NewRoster(
		testutil.CreateStudent(t, "Alice", testutil.Counts{1, 9, 1}, testutil.Counts{2, 7, 3}),
		testutil.CreateStudent(t, "Dan"),
		testutil.CreateStudent(t, "Alice", testutil.Counts{1, 0, 0}),
	)
	require.NoError(t, repo.SaveRoster(ctx, saved))

	loaded := attendance.NewRoster(testutil.CreateStudent(t, "stale"))
	require.NoError(t, repo.LoadRoster(ctx, loaded))
	assert.Equal(t, testutil.Shape(saved), testutil.Shape(loaded))

	// a save replaces the previous roster
	require.NoError(t, repo.SaveRoster(ctx, attendance.NewRoster()))
	require.NoError(t, repo.LoadRoster(ctx, loaded))
	assert.Equal(t, 0, loaded.Len())
}
