package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScore(t *testing.T) {
	assert.Equal(t, 0.0, ComputeScore(0, 0))
	assert.Equal(t, 0.0, ComputeScore(5, 0))
	assert.Equal(t, 0.0, ComputeScore(0, 10))
	assert.Equal(t, 50.0, ComputeScore(5, 10))
	assert.Equal(t, 100.0, ComputeScore(10, 10))
	assert.InDelta(t, 33.33, ComputeScore(1, 3), 0.01)
}
