package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/storage/database"
)

var (
	gooseRunFunc = database.RunMigrations // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("migrate requires the postgres storage backend")
)

type commandLine struct {
	svc      *attendance.Service
	db       *sqlx.DB // postgres backend only
	log      core.Logger
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	colorize bool
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  (no command)              - start an interactive session")
	fmt.Fprintln(cli.out, "  summary                   - print the attendance summary of every student")
	fmt.Fprintln(cli.out, "  lookup -name NAME         - print one student's attendance summary")
	fmt.Fprintln(cli.out, "  defaulters                - list subjects below the attendance threshold")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run database migrations (postgres backend)")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return cli.newSession().run(ctx)
	}

	lookupCmd := flag.NewFlagSet("lookup", flag.ContinueOnError)
	lookupCmd.SetOutput(cli.out)
	lookupName := lookupCmd.String("name", "", "The student's name, as registered (case-sensitive).")

	switch args[1] {
	case "summary":
		return cli.summary(ctx)
	case "lookup":
		if err := lookupCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		name := core.CleanString(*lookupName)
		if name == "" {
			lookupCmd.Usage()
			return errHelp
		}
		return cli.lookup(ctx, name)
	case "defaulters":
		return cli.defaulters(ctx)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) summary(ctx context.Context) error {
	roster, err := cli.svc.Load(ctx)
	if err != nil {
		return err
	}
	return cli.report(roster)
}

func (cli *commandLine) lookup(ctx context.Context, name string) error {
	student, roster, err := cli.svc.Lookup(ctx, name)
	if err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			cli.printNotFound(roster, name)
		}
		return err
	}
	return cli.report(student)
}

func (cli *commandLine) defaulters(ctx context.Context) error {
	roster, err := cli.svc.Load(ctx)
	if err != nil {
		return err
	}
	for _, s := range roster.Defaulters() {
		for _, rec := range s.Records {
			if rec.IsBelowThreshold() {
				fmt.Fprintf(cli.out, "%s: subject %d (%s%%)\n", s.Name, rec.SubjectNumber, attendance.FormatPercentage(rec.Percentage()))
			}
		}
	}
	return nil
}

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	return gooseRunFunc(ctx, cli.db.DB, args[0], args[1:]...)
}

// report prints the summary of `s`, highlighting defaulter notices on terminals.
func (cli *commandLine) report(s attendance.Summarizer) error {
	if !cli.colorize {
		return attendance.Report(cli.out, s)
	}
	for line := range s.Summary() {
		if line == attendance.DefaulterNotice {
			line = color.Red(line)
		}
		if _, err := fmt.Fprintln(cli.out, line); err != nil {
			return errors.Wrap(err, "writing summary")
		}
	}
	return nil
}

func (cli *commandLine) printNotFound(roster *attendance.Roster, name string) {
	fmt.Fprintln(cli.out, "Student name not found. Please enter a valid name.")
	if suggestions := roster.Suggest(name); len(suggestions) > 0 {
		fmt.Fprintf(cli.out, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
}

func asIOError(err error) *core.IOError {
	var ioErr *core.IOError
	if errors.As(err, &ioErr) {
		return ioErr
	}
	return nil
}
