package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchStrings(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, BatchStrings([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b", "c"}}, BatchStrings([]string{"a", "b", "c"}, 0))
	assert.Empty(t, BatchStrings(nil, 3))
}

func TestUniqueFold(t *testing.T) {
	got := UniqueFold(
		[]string{"0xAbC", "0xabc", "0xDEF", "0x111", "0xdef"},
		[]string{"0x111"},
	)
	assert.Equal(t, []string{"0xAbC", "0xDEF"}, got)
}
