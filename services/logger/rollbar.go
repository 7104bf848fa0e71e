package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/mahudhurio/core"
)

// Session identifies the interactive session a log entry belongs to.
type Session struct {
	ID    string
	Admin string
}

type RollbarLogger struct {
	*StdLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger reports to Rollbar when conf.RollbarToken is set and always
// mirrors entries to `std`.
func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{StdLogger: NewStdLogger(std, conf.Debug)}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close waits for queued items to be sent.
func (l RollbarLogger) Close() {
	rollbar.Close()
}

// expected fmt: msg | error, map[string]interface{}, Session
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, []interface{}) {
	var sessSet bool
	rbArgs := make([]interface{}, 0, len(args)+1)
	rbArgs = append(rbArgs, msg)
	stdArgs := make([]interface{}, 0, len(args))
	for _, arg := range args {
		// set the session as the rollbar person
		if sess, ok := arg.(Session); ok {
			if !sessSet { // only set one Session
				rollbar.SetPerson(sess.ID, sess.Admin, "")
				sessSet = true
			}
			stdArgs = append(stdArgs, map[string]interface{}{"session": sess.ID})
		} else {
			rbArgs = append(rbArgs, arg)
			stdArgs = append(stdArgs, arg)
		}
	}
	if !sessSet {
		rollbar.ClearPerson()
	}
	return rbArgs, stdArgs
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Debug(rbArgs...)
	l.StdLogger.Debug(msg, stdArgs...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Info(rbArgs...)
	l.StdLogger.Info(msg, stdArgs...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Warning(rbArgs...)
	l.StdLogger.Warn(msg, stdArgs...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Error(rbArgs...)
	l.StdLogger.Error(msg, stdArgs...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Critical(rbArgs...)
	rollbar.Close()
	l.StdLogger.Fatal(msg, stdArgs...)
}
