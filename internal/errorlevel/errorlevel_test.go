package errorlevel_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, errorlevel.ExitCode(nil))
	assert.Equal(t, 1, errorlevel.ExitCode(errors.New("plain")))
	assert.Equal(t, 3, errorlevel.ExitCode(errorlevel.New(3, nil)))

	wrapped := fmt.Errorf("copy: %w", errorlevel.New(5, errors.New("five files")))
	assert.Equal(t, 5, errorlevel.ExitCode(wrapped))
}

func TestFromCount(t *testing.T) {
	t.Parallel()

	assert.NoError(t, errorlevel.FromCount(0, "copies"))

	err := errorlevel.FromCount(2, "copies")
	assert.EqualError(t, err, "2 copies failed")
	assert.Equal(t, 2, errorlevel.ExitCode(err))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "errorlevel 1", errorlevel.New(errorlevel.Failure, nil).Error())
	assert.Equal(t, "boom 7", errorlevel.Newf("boom %d", 7).Error())

	cause := errors.New("cause")
	assert.ErrorIs(t, errorlevel.New(1, cause), cause)
}

func TestSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, errorlevel.Silent(errorlevel.New(1, nil)))
	assert.False(t, errorlevel.Silent(errorlevel.Newf("message")))
	assert.False(t, errorlevel.Silent(errors.New("plain")))
	assert.False(t, errorlevel.Silent(nil))
}
