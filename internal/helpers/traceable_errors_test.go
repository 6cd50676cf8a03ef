package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))

	assert.False(t, IsNil(Errorf("oops")))
	assert.False(t, IsNil(Wrap(errors.New("oops"))))
}

func TestJoin(t *testing.T) {
	assert.True(t, IsNil(Join(NilError, NilError)))

	joined := Join(NilError, Errorf("one"), Errorf("two"))
	assert.False(t, IsNil(joined))
	assert.Equal(t, 2, joined.NumErrors())
}

func TestErrorMessageSurvivesWrapping(t *testing.T) {
	err := Errorf("move %v is not legal", "e2e5")
	assert.Contains(t, err.Error(), "e2e5")
}
