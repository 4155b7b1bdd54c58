// Package dicomlog provides the leveled, atomic-verbosity logging wrapper
// shared by the core decoder/encoder and the Upper Layer protocol stack.
package dicomlog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// level sets log verbosity. The larger the value, the more verbose. Setting
// it to -1 silences Vprintf and Vtracef; Errorf still logs.
var level = int32(0)

// SetLevel sets log verbosity. Thread safe.
func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

// Level returns the current log level. Thread safe.
func Level() int {
	return int(atomic.LoadInt32(&level))
}

// Vprintf logs at verbosity l: "if level >= l { logrus.Printf(...) }".
func Vprintf(l int, format string, args ...interface{}) {
	if Level() >= l {
		logrus.Printf(format, args...)
	}
}

// Vtracef is Vprintf routed through logrus's Trace level, for the noisiest
// wire-level detail (byte offsets, raw PDU framing).
func Vtracef(l int, format string, args ...interface{}) {
	if Level() >= l {
		logrus.Tracef(format, args...)
	}
}

// WithField mirrors logrus.WithField. It is not gated by Level(); call
// sites that want verbosity gating check Level() themselves.
func WithField(key string, value interface{}) *logrus.Entry {
	return logrus.WithField(key, value)
}

// Errorf always logs regardless of Level: reserved for conditions the
// caller is about to surface as an error return.
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
