package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFee(t *testing.T) {
	assert.Equal(t, 1.00, Fee(100, 0.01))
	assert.Equal(t, 1.01, Fee(100.5, 0.01))
	assert.Equal(t, 0.13, Fee(12.5, 0.01)) // 0.125 rounds half up
	assert.Equal(t, 0.0, Fee(0, 0.01))
}

func TestAddSub(t *testing.T) {
	assert.Equal(t, 0.3, Add(0.1, 0.2))
	assert.Equal(t, 99.00, Sub(200.00, 101.00))
	assert.Equal(t, 98.99, Sub(200.00, 101.01))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
}
