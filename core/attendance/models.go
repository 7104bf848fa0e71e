package attendance

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/mahudhurio/core"
)

// Threshold is the attendance percentage under which a student is a defaulter in a subject.
const Threshold = 80.0

var (
	// errors
	ErrNotFound      = errors.New("student not found")
	ErrNegativeCount = errors.New("lecture counts cannot be negative")

	suggestionCutoff = .6
	maxSuggestions   = 3
)

// Record holds one subject's lecture counts.
type Record struct {
	SubjectNumber int
	Attended      int
	Missed        int
}

func NewRecord(subjectNumber int) *Record {
	return &Record{SubjectNumber: subjectNumber}
}

// SetAttendance overwrites both counts. Negative counts are rejected and leave r unchanged.
func (r *Record) SetAttendance(attended, missed int) error {
	var flds []core.FieldError
	if attended < 0 {
		flds = append(flds, core.FieldError{Field: "attended", Error: "attended must be 0 or greater"})
	}
	if missed < 0 {
		flds = append(flds, core.FieldError{Field: "missed", Error: "missed must be 0 or greater"})
	}
	if flds != nil {
		return core.NewValidationError(ErrNegativeCount, flds...)
	}
	r.Attended = attended
	r.Missed = missed
	return nil
}

func (r *Record) Total() int {
	return r.Attended + r.Missed
}

// Percentage is NaN when no lecture was recorded.
func (r *Record) Percentage() float64 {
	return float64(r.Attended) / float64(r.Total()) * 100
}

// IsBelowThreshold is false for a NaN percentage.
func (r *Record) IsBelowThreshold() bool {
	return r.Percentage() < Threshold
}

// Student is a named, ordered set of subject records.
type Student struct {
	Name    string
	Records []*Record
}

func NewStudent(name string) *Student {
	return &Student{Name: name}
}

func (s *Student) AddRecord(rec *Record) {
	s.Records = append(s.Records, rec)
}

func (s *Student) IsDefaulter() bool {
	for _, rec := range s.Records {
		if rec.IsBelowThreshold() {
			return true
		}
	}
	return false
}

// Roster is the ordered collection of registered students. Names are not deduplicated.
type Roster struct {
	students []*Student
}

func NewRoster(students ...*Student) *Roster {
	r := &Roster{}
	for _, s := range students {
		r.AddStudent(s)
	}
	return r
}

func (r *Roster) AddStudent(s *Student) {
	r.students = append(r.students, s)
}

// Reset drops every student.
func (r *Roster) Reset() {
	r.students = nil
}

func (r *Roster) Len() int {
	return len(r.students)
}

// Students returns the students in insertion order.
func (r *Roster) Students() []*Student {
	students := make([]*Student, len(r.students))
	copy(students, r.students)
	return students
}

func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.students))
	for _, s := range r.students {
		names = append(names, s.Name)
	}
	return names
}

// Exists does a case-sensitive exact match on the student name.
func (r *Roster) Exists(name string) bool {
	_, err := r.FindByName(name)
	return err == nil
}

// FindByName returns the first student named `name`.
func (r *Roster) FindByName(name string) (*Student, error) {
	for _, s := range r.students {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

// Defaulters returns the students below Threshold in at least one subject.
func (r *Roster) Defaulters() []*Student {
	var defaulters []*Student
	for _, s := range r.students {
		if s.IsDefaulter() {
			defaulters = append(defaulters, s)
		}
	}
	return defaulters
}

// Suggest returns up to 3 distinct roster names close to `name`, best match first.
func (r *Roster) Suggest(name string) []string {
	type candidate struct {
		name  string
		ratio float64
	}

	seen := make(map[string]bool)
	var candidates []candidate
	target := strings.Split(strings.ToLower(name), "")
	matcher := difflib.NewMatcher(nil, target)
	for _, s := range r.students {
		if s.Name == name || s.Name == "" || seen[s.Name] {
			continue
		}
		seen[s.Name] = true

		matcher.SetSeq1(strings.Split(strings.ToLower(s.Name), ""))
		if matcher.RealQuickRatio() < suggestionCutoff || matcher.QuickRatio() < suggestionCutoff {
			continue
		}
		if ratio := matcher.Ratio(); ratio >= suggestionCutoff {
			candidates = append(candidates, candidate{name: s.Name, ratio: ratio})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}
	return names
}
