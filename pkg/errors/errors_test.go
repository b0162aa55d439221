package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeValidation, "bad input")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "validation: bad input", err.Error())
	assert.NotEmpty(t, err.Stack)
	assert.Nil(t, err.Unwrap())
}

func TestWrap(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, ErrorTypeFile, "read failed")
	require.NotNil(t, err)
	assert.Equal(t, "file: read failed: unexpected EOF", err.Error())
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeFile, "unused"))
}

func TestWrapPreservesInnermostStack(t *testing.T) {
	inner := New(ErrorTypeData, "conversion failed")
	outer := Wrap(inner, ErrorTypeInternal, "worker failed")
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, stderrors.Is(outer, inner))
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeData, "bad cell")
	assert.True(t, IsType(err, ErrorTypeData))
	assert.False(t, IsType(err, ErrorTypeFile))
	assert.False(t, IsType(io.EOF, ErrorTypeData))
	assert.False(t, IsType(nil, ErrorTypeData))

	wrapped := Wrap(err, ErrorTypeFile, "outer")
	assert.True(t, IsType(wrapped, ErrorTypeFile))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeConfig, "missing field").
		WithDetail("field", "path").
		WithDetail("line", 3)
	assert.Equal(t, "path", err.Details["field"])
	assert.Equal(t, 3, err.Details["line"])
}
