package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		want        float64
	}{
		{name: "adds correctly", left: 1, right: 2, want: 3},
		{name: "floats", left: 1.0, right: 2.0, want: 3.0},
		{name: "fractions", left: 0.5, right: 0.25, want: 0.75},
		{name: "negative operand", left: -1.5, right: 1.5, want: 0},
		{name: "zero identity", left: 42, right: 0, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Add(tt.left, tt.right))
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		want        float64
	}{
		{name: "subtracts correctly", left: 2, right: 1, want: 1},
		{name: "result below zero", left: 1, right: 2, want: -1},
		{name: "zero identity", left: 42, right: 0, want: 42},
		{name: "self cancels", left: 3.25, right: 3.25, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.left, tt.right))
		})
	}
}

func TestAdd_Commutative(t *testing.T) {
	assert.Equal(t, Add(1.5, 2.5), Add(2.5, 1.5))
}

func TestAddUint(t *testing.T) {
	assert.Equal(t, uint64(3), AddUint(1, 2))
	assert.Equal(t, uint64(0), AddUint(0, 0))

	// Overflow is unhandled and wraps per Go semantics.
	assert.Equal(t, uint64(0), AddUint(math.MaxUint64, 1))
}

func TestSubtractUint(t *testing.T) {
	assert.Equal(t, uint64(1), SubtractUint(2, 1))

	// Underflow is unhandled and wraps per Go semantics.
	assert.Equal(t, uint64(math.MaxUint64), SubtractUint(0, 1))
}
