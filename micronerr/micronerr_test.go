/*
File    : micron/micronerr/micronerr_test.go
Author  : Micron contributors
*/
package micronerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeNumbering(t *testing.T) {
	assert.Equal(t, 400, int(Error))
	assert.Equal(t, 401, int(TypeError))
	assert.Equal(t, 402, int(LabelError))
	assert.Equal(t, 403, int(ValueError))
	assert.Equal(t, 404, int(NoSlotError))
}

func TestNewFormatsMessage(t *testing.T) {
	err := New(ValueError, "bad literal %q", "abc")
	assert.Equal(t, ValueError, err.Code)
	assert.Equal(t, `bad literal "abc"`, err.Message)
}

func TestErrorStringIncludesCode(t *testing.T) {
	err := New(NoSlotError, "no room")
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "NoSlotError")
}

func TestUnknownCodeStringifies(t *testing.T) {
	assert.Equal(t, "UnknownError(7)", Code(7).String())
}
