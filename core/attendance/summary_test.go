package attendance_test

import (
	"bytes"
	"math"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/tests"
)

func TestRecordLines(t *testing.T) {
	tests := []struct {
		name   string
		counts testutil.Counts
		want   []string
	}{
		{
			name:   "at threshold",
			counts: testutil.Counts{1, 8, 2},
			want: []string{
				"Attendance Summary for Alice in Subject 1:",
				"Total Lectures Attended: 8",
				"Total Lectures Missed: 2",
				"Attendance Percentage: 80.0%",
			},
		},
		{
			name:   "defaulter",
			counts: testutil.Counts{2, 7, 3},
			want: []string{
				"Attendance Summary for Alice in Subject 2:",
				"Total Lectures Attended: 7",
				"Total Lectures Missed: 3",
				"Attendance Percentage: 70.0%",
				attendance.DefaulterNotice,
			},
		},
		{
			name:   "no lectures",
			counts: testutil.Counts{3, 0, 0},
			want: []string{
				"Attendance Summary for Alice in Subject 3:",
				"Total Lectures Attended: 0",
				"Total Lectures Missed: 0",
				"Attendance Percentage: NaN%",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.CreateStudent(t, "Alice", tt.counts)
			assert.Equal(t, tt.want, slices.Collect(attendance.RecordLines(s.Name, s.Records[0])))
		})
	}
}

func TestStudent_Summary(t *testing.T) {
	s := testutil.CreateStudent(t, "Bob")
	assert.Empty(t, slices.Collect(s.Summary()))

	seq := s.Summary()
	s.AddRecord(attendance.NewRecord(1))
	require.NoError(t, s.Records[0].SetAttendance(2, 1))
	s.AddRecord(attendance.NewRecord(2))
	require.NoError(t, s.Records[1].SetAttendance(9, 1))

	want := []string{
		"Attendance Summary for Bob in Subject 1:",
		"Total Lectures Attended: 2",
		"Total Lectures Missed: 1",
		"Attendance Percentage: 66.66666666666666%",
		attendance.DefaulterNotice,
		"Attendance Summary for Bob in Subject 2:",
		"Total Lectures Attended: 9",
		"Total Lectures Missed: 1",
		"Attendance Percentage: 90.0%",
	}
	// the sequence is lazy and restartable
	assert.Equal(t, want, slices.Collect(seq))
	assert.Equal(t, want, slices.Collect(seq))

	// stopping early
	var first []string
	for line := range seq {
		first = append(first, line)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, want[:2], first)
}

func TestRoster_Summary(t *testing.T) {
	roster := attendance.NewRoster(
		testutil.CreateStudent(t, "Alice", testutil.Counts{1, 9, 1}),
		testutil.CreateStudent(t, "Carol"),
		testutil.CreateStudent(t, "Bob", testutil.Counts{4, 1, 2}),
	)

	var buf bytes.Buffer
	require.NoError(t, attendance.Report(&buf, roster))
	want := "Attendance Summary for Alice in Subject 1:\n" +
		"Total Lectures Attended: 9\n" +
		"Total Lectures Missed: 1\n" +
		"Attendance Percentage: 90.0%\n" +
		"Attendance Summary for Bob in Subject 4:\n" +
		"Total Lectures Attended: 1\n" +
		"Total Lectures Missed: 2\n" +
		"Attendance Percentage: 33.33333333333333%\n" +
		attendance.DefaulterNotice + "\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, attendance.Report(&buf, attendance.NewRoster()))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReport_writeError(t *testing.T) {
	s := testutil.CreateStudent(t, "Alice", testutil.Counts{1, 1, 1})
	err := attendance.Report(failingWriter{}, s)
	require.Error(t, err)
	assert.Equal(t, "writing summary: disk full", err.Error())
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 80, want: "80.0"},
		{in: 100, want: "100.0"},
		{in: 0, want: "0.0"},
		{in: 70.5, want: "70.5"},
		{in: 200.0 / 3.0, want: "66.66666666666667"},
		{in: 1.0 / 3.0 * 100, want: "33.33333333333333"},
		{in: 0.0005, want: "5.0E-4"},
		{in: 0.001, want: "0.001"},
		{in: 12345678, want: "1.2345678E7"},
		{in: 1e7, want: "1.0E7"},
		{in: math.NaN(), want: "NaN"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, attendance.FormatPercentage(tt.in))
		})
	}
}
