package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	err := DegenerateSample("g1", "first", 1)
	assert.Equal(t, CodeDegenerateSample, GetCode(err))
	assert.Contains(t, err.Error(), "g1")

	wrapped := Wrap(err, "running CI test")
	assert.Equal(t, CodeDegenerateSample, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeDegenerateSample))
	assert.False(t, HasCode(wrapped, CodeSchemaMismatch))
	assert.True(t, stderrors.Is(wrapped, err))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, HasCode(stderrors.New("plain"), CodeIOError))
	assert.False(t, HasCode(nil, CodeIOError))
}
