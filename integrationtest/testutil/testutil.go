// Package testutil provides shared assertion helpers for
// integration test scenarios.
package testutil

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// RequireTextEqual fails the test with a unified diff when the
// two texts differ. Rendered engine output is multi-line, and
// a diff localizes the divergence far faster than testify's
// default dump.
func RequireTextEqual(t *testing.T, expected, actual string) {
	t.Helper()

	if expected == actual {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	require.NoError(t, err)
	t.Fatalf("rendered output mismatch:\n%s", diff)
}
