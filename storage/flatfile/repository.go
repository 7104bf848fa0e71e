package flatfile

import (
	"context"
	"io"
	"os"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type rosterRepository struct {
	path   string
	decode func(io.Reader, *attendance.Roster) error
}

// NewRosterRepository stores rosters in the file at `path`.
// With `grouped`, loading uses DecodeGrouped instead of Decode.
func NewRosterRepository(path string, grouped bool) attendance.Repository {
	repo := &rosterRepository{path: path, decode: Decode}
	if grouped {
		repo.decode = DecodeGrouped
	}
	return repo
}

func (repo *rosterRepository) SaveRoster(ctx context.Context, roster *attendance.Roster) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(repo.path)
	if err != nil {
		return core.NewIOError("opening data file", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil && err == nil {
			err = core.NewIOError("closing data file", cErr)
		}
	}()

	if err := Encode(file, roster); err != nil {
		return core.NewIOError("writing data file", err)
	}
	return nil
}

func (repo *rosterRepository) LoadRoster(ctx context.Context, roster *attendance.Roster) error {
	roster.Reset()
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Open(repo.path)
	if err != nil {
		return core.NewIOError("opening data file", err)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer file.Close()

	if err := repo.decode(file, roster); err != nil {
		if IsParseError(err) {
			return err
		}
		return core.NewIOError("reading data file", err)
	}
	return nil
}
