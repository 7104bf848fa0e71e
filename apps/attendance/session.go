package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/services/logger"
	"github.com/trezcool/mahudhurio/storage/flatfile"
)

type role int

const (
	roleAdmin role = iota + 1
	roleStudent
)

var errInvalidRole = errors.New("invalid user type")

func parseRole(s string) (role, error) {
	switch core.CleanString(s, true /* lower */) {
	case "admin":
		return roleAdmin, nil
	case "student":
		return roleStudent, nil
	}
	return 0, errInvalidRole
}

// session is one interactive run. The roster entered by the admin stays
// with the session for the closing admin view.
type session struct {
	*commandLine
	prompt    *prompter
	id        string
	adminName string
	roster    *attendance.Roster
}

func (cli *commandLine) newSession() *session {
	return &session{
		commandLine: cli,
		prompt:      newPrompter(cli.in, cli.out),
		id:          uuid.New().String(),
	}
}

func (sess *session) logSession() logsvc.Session {
	return logsvc.Session{ID: sess.id, Admin: sess.adminName}
}

func (sess *session) run(ctx context.Context) error {
	sess.log.Info("session started", sess.logSession())
	fmt.Fprintln(sess.out, "Welcome to Attendance Management System")

	for {
		answer, err := sess.prompt.ask("Are you an Admin or a Student? (Enter 'admin' or 'student'): ")
		if err != nil {
			return err
		}
		r, err := parseRole(answer)
		if err != nil {
			fmt.Fprintln(sess.out, "Invalid user type. Please enter 'admin' or 'student'.")
			continue
		}

		switch r {
		case roleAdmin:
			err = sess.admin(ctx)
		case roleStudent:
			err = sess.student(ctx)
		}
		if err != nil {
			return err
		}

		answer, err = sess.prompt.ask("Do you want to continue? (Enter 'yes' or 'no'): ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(core.CleanString(answer), "yes") {
			break
		}
	}

	if sess.adminName != "" {
		fmt.Fprintln(sess.out, "\nAdmin View:")
		if err := sess.report(sess.roster); err != nil {
			return err
		}
		fmt.Fprintln(sess.out, "\nStudent View:")
		if err := sess.student(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintln(sess.out, "Thank you for using the Attendance Management System.")
	sess.log.Info("session ended", sess.logSession())
	return nil
}

// admin registers a new roster, shows it and saves it over the persisted one.
func (sess *session) admin(ctx context.Context) error {
	if sess.adminName == "" {
		for sess.adminName == "" {
			name, err := sess.prompt.ask("Enter Admin name: ")
			if err != nil {
				return err
			}
			sess.adminName = core.CleanString(name)
		}
		sess.log.Info("admin identified", sess.logSession())
	}

	total, err := sess.prompt.askCount("Enter the number of students: ")
	if err != nil {
		return err
	}

	roster := attendance.NewRoster()
	for i := 1; i <= total; i++ {
		entry, err := sess.askStudent(i)
		if err != nil {
			return err
		}
		if _, err := sess.svc.Register(roster, entry); err != nil {
			return err
		}
	}
	sess.roster = roster

	fmt.Fprintln(sess.out, "\nAdmin View:")
	if err := sess.report(roster); err != nil {
		return err
	}

	if err := sess.svc.Save(ctx, roster); err != nil {
		if ioErr := asIOError(err); ioErr != nil {
			fmt.Fprintln(sess.errOut, "Error writing to file: "+ioErr.Error())
			sess.log.Error("saving roster failed", err, sess.logSession())
			return nil
		}
		return err
	}
	return nil
}

func (sess *session) askStudent(i int) (attendance.StudentEntry, error) {
	var entry attendance.StudentEntry
	for {
		name, err := sess.prompt.ask(fmt.Sprintf("Enter student %d's name: ", i))
		if err != nil {
			return entry, err
		}
		entry = attendance.StudentEntry{Name: name}
		if err := entry.Validate(); err != nil {
			sess.printInvalid(err)
			continue
		}
		break
	}

	subjects, err := sess.prompt.askCount(fmt.Sprintf("Enter total number of subjects for %s: ", entry.Name))
	if err != nil {
		return entry, err
	}
	for j := 1; j <= subjects; j++ {
		attended, err := sess.prompt.askCount(fmt.Sprintf("Enter number of lectures attended for Subject %d: ", j))
		if err != nil {
			return entry, err
		}
		missed, err := sess.prompt.askCount(fmt.Sprintf("Enter number of lectures missed for Subject %d: ", j))
		if err != nil {
			return entry, err
		}
		entry.Records = append(entry.Records, attendance.RecordEntry{SubjectNumber: j, Attended: attended, Missed: missed})
	}
	return entry, nil
}

// student looks a name up in the persisted roster.
func (sess *session) student(ctx context.Context) error {
	name, err := sess.prompt.ask("Enter Student name: ")
	if err != nil {
		return err
	}
	return sess.lookup(ctx, name)
}

func (sess *session) lookup(ctx context.Context, name string) error {
	student, roster, err := sess.svc.Lookup(ctx, name)
	switch {
	case err == nil:
		return sess.report(student)
	case errors.Cause(err) == attendance.ErrNotFound:
	case asIOError(err) != nil:
		fmt.Fprintln(sess.errOut, "Error reading from file: "+asIOError(err).Error())
		sess.log.Error("loading roster failed", err, sess.logSession())
		roster = attendance.NewRoster()
	case flatfile.IsParseError(err):
		return errors.Wrap(err, "corrupted data file")
	default:
		return err
	}

	sess.printNotFound(roster, name)
	return nil
}

func (sess *session) printInvalid(err error) {
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok || len(vErr.Fields) == 0 {
		fmt.Fprintln(sess.out, err.Error())
		return
	}
	for _, fld := range vErr.Fields {
		fmt.Fprintln(sess.out, fld.Error)
	}
}
