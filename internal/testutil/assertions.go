package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged fails the test unless every fragment appears on one line of
// the captured logs.
func AssertLogged(t *testing.T, logs string, fragments ...string) {
	t.Helper()

	for _, line := range strings.Split(logs, "\n") {
		if containsAll(line, fragments) {
			return
		}
	}
	require.Failf(t, "log line not found", "no log line contains all of %q\nlogs:\n%s", fragments, logs)
}

func containsAll(s string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}
