package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertErrorMessageContains checks that the target error carries the
// expected error's message, accepting any wrapping around it. A nil
// expected error asserts the target is nil too.
func AssertErrorMessageContains(t *testing.T, expected, target error) {
	t.Helper()

	if expected == nil {
		assert.NoError(t, target)

		return
	}

	assert.ErrorContains(t, target, expected.Error())
}
