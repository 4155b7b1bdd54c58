package dicomlog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLevelAndLevel(t *testing.T) {
	defer SetLevel(0)

	SetLevel(3)
	assert.Equal(t, 3, Level())

	SetLevel(-1)
	assert.Equal(t, -1, Level())
}

func TestVprintfGatedByLevel(t *testing.T) {
	defer SetLevel(0)
	orig := logrus.StandardLogger().Out
	defer logrus.SetOutput(orig)

	var buf bufferWriter
	logrus.SetOutput(&buf)

	SetLevel(0)
	Vprintf(1, "should not appear")
	assert.Empty(t, buf.data)

	SetLevel(2)
	Vprintf(1, "should appear")
	assert.Contains(t, buf.data, "should appear")
}

func TestWithFieldReturnsEntry(t *testing.T) {
	entry := WithField("tag", "(0008,0018)")
	assert.Equal(t, "(0008,0018)", entry.Data["tag"])
}

type bufferWriter struct {
	data string
}

func (b *bufferWriter) Write(p []byte) (int, error) {
	b.data += string(p)
	return len(p), nil
}
