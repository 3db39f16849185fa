package util

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestEffortMapIsolatesFailures(t *testing.T) {
	items := []string{"a", "broken", "c"}

	result := BestEffortMap(items, func(s string) string { return s },
		func(s string) (string, error) {
			if s == "broken" {
				return "", errors.New("boom")
			}
			return strings.ToUpper(s), nil
		})

	assert.Equal(t, []string{"A", "C"}, result.Successes)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken", result.Failures[0].Label)
	assert.EqualError(t, result.Failures[0].Err, "boom")
}

func TestBestEffortMapEmptyInput(t *testing.T) {
	result := BestEffortMap(nil, func(int) string { return "" },
		func(int) (int, error) { return 0, nil })

	assert.Empty(t, result.Successes)
	assert.Empty(t, result.Failures)
}
