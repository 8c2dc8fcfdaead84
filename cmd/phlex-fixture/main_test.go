package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunFixtures exercises the harness against the repository's own
// sample fixture tree under testdata/fixtures.
func TestRunFixtures(t *testing.T) {
	report, err := runFixtures("../../testdata/fixtures")
	require.NoError(t, err)

	require.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.NotEmpty(t, report.RunID)

	for _, r := range report.Results {
		assert.Truef(t, r.Pass, "fixture %s failed: %s", r.Name, r.Detail)
	}
}

func TestRunFixtureSingleMatchingFixturePasses(t *testing.T) {
	spec := FixtureSpec{Name: "echo-string", Input: "echo.php", Golden: "echo.ast.txt", Kind: "ast"}
	result := runFixture("../../testdata/fixtures", spec)
	assert.True(t, result.Pass)
}
