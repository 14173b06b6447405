package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hdlkit/vecgen/internal/testutil"
)

func TestGolden_CounterWalk(t *testing.T) {
	s := &Scenario{
		Name: "counter_walk",
		Events: testutil.Seq(
			testutil.Initial(0),
			testutil.SetRel(0x1, 1),
			testutil.SetRel(0x2, 1),
			testutil.ClearRel(0x1, 1),
			testutil.ToggleRel(0xf, 2),
		),
		VectorSize: 8,
	}
	require.NoError(t, RunGolden(t, s))
}

func TestGolden_AbsoluteSchedule(t *testing.T) {
	s := &Scenario{
		Name: "absolute_schedule",
		Events: testutil.Seq(
			testutil.Initial(0xff),
			testutil.ClearAbs(0x0f, 3),
			testutil.SetAbs(0xf00, 6),
		),
		VectorSize: 16,
	}
	require.NoError(t, RunGolden(t, s))
}
