package workset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharEstimator_Estimate(t *testing.T) {
	est := NewCharEstimator()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "empty", text: "", expected: 0},
		{name: "one char rounds up", text: "a", expected: 1},
		{name: "exactly four chars", text: "abcd", expected: 1},
		{name: "five chars rounds up", text: "abcde", expected: 2},
		{
			name:     "eighty chars",
			text:     strings.Repeat("x", 80),
			expected: 20,
		},
		{
			name: "multibyte counts bytes",
			// 3 bytes per rune in UTF-8, 12 bytes total.
			text:     "日本語中",
			expected: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, est.Estimate(tc.text))
		})
	}
}

func TestCharEstimator_Deterministic(t *testing.T) {
	est := NewCharEstimator()
	text := strings.Repeat("fragment ", 50)

	first := est.Estimate(text)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, est.Estimate(text))
	}
}

func TestCharEstimator_MonotonicInLength(t *testing.T) {
	est := NewCharEstimator()

	prev := 0
	for i := 0; i <= 256; i++ {
		size := est.Estimate(strings.Repeat("a", i))
		assert.GreaterOrEqual(t, size, prev,
			"estimate must not decrease as text grows",
		)
		prev = size
	}
}
