// Package flatfile stores rosters in a line oriented text file:
//
//	<studentName>
//	<subjectNumber>,<attended>,<missed>
//	...
//	---
package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

const fieldSep = ","

var (
	errFieldCount     = errors.New("unexpected number of fields")
	errOrphanedRecord = errors.New("record line without a student name")
)

// ParseError reports a malformed line of the data file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (err ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", err.Line, err.Text, err.Err)
}

func (err ParseError) Cause() error  { return err.Err }
func (err ParseError) Unwrap() error { return err.Err }

// IsParseError walks the error chain looking for a ParseError.
func IsParseError(err error) bool {
	var pErr *ParseError
	return errors.As(err, &pErr)
}

// Encode writes every student of `roster` as a name line, one line per record and a separator line.
func Encode(w io.Writer, roster *attendance.Roster) error {
	bw := bufio.NewWriter(w)
	for _, s := range roster.Students() {
		if _, err := bw.WriteString(s.Name + "\n"); err != nil {
			return errors.Wrap(err, "writing student name")
		}
		for _, rec := range s.Records {
			if _, err := fmt.Fprintf(bw, "%d,%d,%d\n", rec.SubjectNumber, rec.Attended, rec.Missed); err != nil {
				return errors.Wrap(err, "writing record")
			}
		}
		if _, err := bw.WriteString(core.RecordSeparator + "\n"); err != nil {
			return errors.Wrap(err, "writing separator")
		}
	}
	return errors.Wrap(bw.Flush(), "flushing roster")
}

// Decode resets `roster` and rebuilds it one line at a time:
//   - separator lines are skipped;
//   - a line with a comma becomes a new student named after its first field,
//     holding the single record the line describes;
//   - any other line becomes a student without records.
//
// Records therefore do not come back under the name they were written after.
// See DecodeGrouped for a loader that keeps them together.
func Decode(r io.Reader, roster *attendance.Roster) error {
	roster.Reset()
	return scanLines(r, func(lineNo int, line string) error {
		switch {
		case line == core.RecordSeparator:
		case strings.Contains(line, fieldSep):
			student, err := decodeStudentRecord(line)
			if err != nil {
				return &ParseError{Line: lineNo, Text: line, Err: err}
			}
			roster.AddStudent(student)
		default:
			roster.AddStudent(attendance.NewStudent(line))
		}
		return nil
	})
}

// DecodeGrouped resets `roster` and rebuilds it keeping every record line under
// the name line that precedes it, up to the next separator.
func DecodeGrouped(r io.Reader, roster *attendance.Roster) error {
	roster.Reset()
	var curr *attendance.Student
	return scanLines(r, func(lineNo int, line string) error {
		switch {
		case line == core.RecordSeparator:
			curr = nil
		case strings.Contains(line, fieldSep):
			if curr == nil {
				return &ParseError{Line: lineNo, Text: line, Err: errOrphanedRecord}
			}
			fields := strings.Split(line, fieldSep)
			if len(fields) != 3 {
				return &ParseError{Line: lineNo, Text: line, Err: errFieldCount}
			}
			rec, err := decodeRecord(fields[0], fields[1], fields[2])
			if err != nil {
				return &ParseError{Line: lineNo, Text: line, Err: err}
			}
			curr.AddRecord(rec)
		default:
			curr = attendance.NewStudent(line)
			roster.AddStudent(curr)
		}
		return nil
	})
}

func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := fn(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "reading roster")
}

// decodeStudentRecord accepts `subject,attended,missed` (the written layout, where the
// subject number doubles as the name) and `name,subject,attended,missed`.
func decodeStudentRecord(line string) (*attendance.Student, error) {
	fields := strings.Split(line, fieldSep)

	var rec *attendance.Record
	var err error
	switch len(fields) {
	case 3:
		rec, err = decodeRecord(fields[0], fields[1], fields[2])
	case 4:
		rec, err = decodeRecord(fields[1], fields[2], fields[3])
	default:
		return nil, errFieldCount
	}
	if err != nil {
		return nil, err
	}

	student := attendance.NewStudent(fields[0])
	student.AddRecord(rec)
	return student, nil
}

func decodeRecord(subject, attended, missed string) (*attendance.Record, error) {
	var nums [3]int
	for i, fld := range [...]string{subject, attended, missed} {
		n, err := strconv.Atoi(fld)
		if err != nil {
			return nil, errors.Wrap(err, "parsing record")
		}
		nums[i] = n
	}
	rec := attendance.NewRecord(nums[0])
	if err := rec.SetAttendance(nums[1], nums[2]); err != nil {
		return nil, err
	}
	return rec, nil
}
