package attendance

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaulterNotice closes the summary of a record below Threshold.
const DefaulterNotice = "This student is a defaulter in this subject."

// Summarizer is anything that can render its own attendance summary.
type Summarizer interface {
	Summary() iter.Seq[string]
}

var (
	_ Summarizer = (*Student)(nil)
	_ Summarizer = (*Roster)(nil)
)

// RecordLines yields the summary block of one record of the student `name`.
func RecordLines(name string, rec *Record) iter.Seq[string] {
	return func(yield func(string) bool) {
		lines := [...]string{
			fmt.Sprintf("Attendance Summary for %s in Subject %d:", name, rec.SubjectNumber),
			fmt.Sprintf("Total Lectures Attended: %d", rec.Attended),
			fmt.Sprintf("Total Lectures Missed: %d", rec.Missed),
			fmt.Sprintf("Attendance Percentage: %s%%", FormatPercentage(rec.Percentage())),
		}
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
		if rec.IsBelowThreshold() {
			yield(DefaulterNotice)
		}
	}
}

// Summary yields the summary blocks of every record, in insertion order.
// The sequence reads the current records each time it is ranged over.
func (s *Student) Summary() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, rec := range s.Records {
			for line := range RecordLines(s.Name, rec) {
				if !yield(line) {
					return
				}
			}
		}
	}
}

// Summary yields the summaries of every student, in roster order.
func (r *Roster) Summary() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range r.students {
			for line := range s.Summary() {
				if !yield(line) {
					return
				}
			}
		}
	}
}

// Report writes every summary line of `s` to `w`, one per line.
func Report(w io.Writer, s Summarizer) error {
	for line := range s.Summary() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return errors.Wrap(err, "writing summary")
		}
	}
	return nil
}

// FormatPercentage renders `f` like a JVM double: the shortest decimal that round trips,
// always with a fractional part ("80.0", "66.66666666666667", "NaN"), and in
// computerized scientific notation outside [1e-3, 1e7).
func FormatPercentage(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-3 || abs >= 1e7) {
		s := strconv.FormatFloat(f, 'E', -1, 64) // e.g. 1.5E-04
		mant, exp, _ := strings.Cut(s, "E")
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		n, _ := strconv.Atoi(exp)
		return mant + "E" + strconv.Itoa(n)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
