package fixtures

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type testWriter struct {
	tb testing.TB
}

var _ io.Writer = (*testWriter)(nil)

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Log(string(p))
	return len(p), nil
}

// NewTestLogger returns a debug level logger which writes through tb.Log, so output is
// only shown for failing tests.
func NewTestLogger(tb testing.TB) logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(testWriter{tb: tb})
	return l
}
