package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{100, 100},
		{66.66666666666666, 66.7},
		{33.33333333333333, 33.3},
		{12.25, 12.3},
		{12.24, 12.2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round1(tt.in))
	}
}

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
