package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunGolden executes a scenario and compares its hex trace against a
// golden file stored in testdata/<scenario.Name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files pin the exact on-disk trace format, so they catch both
// expansion regressions and serialization drift.
func RunGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}
	if result.Err != nil {
		return result.Err
	}

	var buf bytes.Buffer
	if err := result.Trace.WriteHex(&buf); err != nil {
		return err
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, s.Name, buf.Bytes())
	return nil
}
