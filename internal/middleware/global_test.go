package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimitSpec(t *testing.T) {
	assert.Equal(t, "25M", bodyLimitSpec(25))
	assert.Equal(t, "1M", bodyLimitSpec(1))
	assert.Equal(t, "10M", bodyLimitSpec(0))
	assert.Equal(t, "10M", bodyLimitSpec(-5))
}
