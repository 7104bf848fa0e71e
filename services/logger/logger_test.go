package logsvc

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core"
)

func TestStdLogger(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		logFunc func(l *StdLogger)
		want    []string
	}{
		{
			name:    "debug dropped",
			logFunc: func(l *StdLogger) { l.Debug("hidden") },
		},
		{
			name:    "debug kept",
			debug:   true,
			logFunc: func(l *StdLogger) { l.Debug("shown") },
			want:    []string{"DEBUG shown"},
		},
		{
			name:    "info with args",
			logFunc: func(l *StdLogger) { l.Info("saved", map[string]interface{}{"students": 2}) },
			want:    []string{"INFO saved", "map[students:2]"},
		},
		{
			name:    "error",
			logFunc: func(l *StdLogger) { l.Error("failed", errors.New("boom")) },
			want:    []string{"ERROR failed", "boom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(NewStdLogger(log.New(&buf, "", 0), tt.debug))

			var got []string
			if out := strings.TrimSpace(buf.String()); out != "" {
				got = strings.Split(out, "\n")
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRollbarLogger_disabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", Build: "test"})

	l.Warn("lookup failed", Session{ID: "abc", Admin: "root"}, "Bob")

	assert.Equal(t, "WARN lookup failed\nmap[session:abc]\nBob\n", buf.String())
}
