package pool

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPutBuffer(t *testing.T) {
	buf := GetBuffer()
	require.NotNil(t, buf)
	assert.Len(t, *buf, CopyBufferSize)
	PutBuffer(buf)
}

func TestCopy(t *testing.T) {
	src := strings.Repeat("s3ftp ", 50_000)

	var dst bytes.Buffer
	n, err := Copy(&dst, strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, dst.String())
}
