package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/services/logger"
	"github.com/trezcool/mahudhurio/storage/database"
	"github.com/trezcool/mahudhurio/storage/flatfile"
	"github.com/trezcool/mahudhurio/storage/inmem"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	conf, err := core.NewConfig(wd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return err
	}

	std := log.New(os.Stderr, "ATTENDANCE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.LogFile != "" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log file:", err)
			return err
		}
		//goland:noinspection GoUnhandledErrorResult
		defer file.Close()
		std.SetOutput(file)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	defer logger.Close()

	repo, db, err := openRepository(ctx, conf)
	if err != nil {
		logger.Error("opening storage failed", err)
		return err
	}
	if db != nil {
		//goland:noinspection GoUnhandledErrorResult
		defer db.Close()
	}

	cli := commandLine{
		svc:      attendance.NewService(repo, logger),
		db:       db,
		log:      logger,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
		colorize: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := cli.run(ctx, os.Args); err != nil {
		switch {
		case core.IsShutdown(err):
			return nil
		case err == errHelp:
		case errors.Cause(err) == attendance.ErrNotFound:
		default:
			logger.Error("command failed", err)
			if conf.LogFile != "" {
				fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
			}
		}
		return err
	}
	return nil
}

// openRepository picks the roster storage named by conf.Storage.Backend.
// The returned DB is only set for the postgres backend.
func openRepository(ctx context.Context, conf *core.Config) (attendance.Repository, *sqlx.DB, error) {
	switch conf.Storage.Backend {
	case core.StorageMemory:
		db, err := inmemdb.Open()
		if err != nil {
			return nil, nil, err
		}
		return inmemdb.NewRosterRepository(db), nil, nil
	case core.StoragePostgres:
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Ping(ctx, db, 30); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return database.NewRosterRepository(db), db, nil
	default:
		return flatfile.NewRosterRepository(conf.Storage.DataFile, conf.Storage.GroupedLoad), nil, nil
	}
}
