package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Name  string `field:"name" validate:"required,nocomma,notsep"`
	Count int    `field:"count" validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		entry   testEntry
		wantErr string
		want    []FieldError
	}{
		{name: "valid", entry: testEntry{Name: "Alice"}},
		{
			name:    "required",
			entry:   testEntry{},
			wantErr: "name is required",
			want:    []FieldError{{Field: "name", Error: "name is required"}},
		},
		{
			name:    "comma",
			entry:   testEntry{Name: "Doe, J"},
			wantErr: "name must not contain a comma",
			want:    []FieldError{{Field: "name", Error: "name must not contain a comma"}},
		},
		{
			name:    "separator and count",
			entry:   testEntry{Name: "---", Count: -1},
			wantErr: `name must not be "---"; count must be 0 or greater`,
			want: []FieldError{
				{Field: "name", Error: `name must not be "---"`},
				{Field: "count", Error: "count must be 0 or greater"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.entry)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.want, vErr.Fields)
		})
	}
}

func TestErrors(t *testing.T) {
	vErr := NewValidationError(errors.New("invalid"))
	assert.True(t, IsValidationError(errors.Wrap(vErr, "registering")))
	assert.False(t, IsValidationError(errors.New("invalid")))

	ioErr := NewIOError("reading data file", errors.New("is a directory"))
	assert.Equal(t, "reading data file: is a directory", ioErr.Error())
	assert.True(t, IsIOError(errors.Wrap(ioErr, "loading roster")))
	assert.False(t, IsIOError(vErr))

	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("input closed"), "reading role")))
	assert.False(t, IsShutdown(ioErr))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Alice", CleanString("\t Alice \n"))
	assert.Equal(t, "alice", CleanString(" ALICE ", true))
	assert.Equal(t, "", CleanString("   "))
}
