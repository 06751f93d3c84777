package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStopwatchTicksOnlyWhileRunning(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch()
	stopwatch.Tick()
	require.Zero(t, stopwatch.ElapsedMS())

	require.True(t, stopwatch.Start())
	require.False(t, stopwatch.Start())
	for i := 0; i < 150; i++ {
		stopwatch.Tick()
	}
	require.EqualValues(t, 1500, stopwatch.ElapsedMS())

	require.True(t, stopwatch.Stop())
	stopwatch.Tick()
	require.EqualValues(t, 1500, stopwatch.ElapsedMS())
	require.Equal(t, "00:01.500", stopwatch.Display())
}

func TestStopwatchResetClearsEverything(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch()
	stopwatch.Reset()
	require.Zero(t, stopwatch.ElapsedMS())
	require.Empty(t, stopwatch.Laps())

	stopwatch.Start()
	stopwatch.Tick()
	_, ok := stopwatch.Lap()
	require.True(t, ok)

	stopwatch.Reset()
	require.False(t, stopwatch.Running())
	require.Zero(t, stopwatch.ElapsedMS())
	require.Empty(t, stopwatch.Laps())

	stopwatch.Start()
	lap, ok := stopwatch.Lap()
	require.True(t, ok)
	require.Equal(t, "Lap 1: 00:00.000", lap)
}

func TestStopwatchLapsNewestFirst(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch()
	stopwatch.Start()
	for i := 0; i < 3; i++ {
		for j := 0; j < 100; j++ {
			stopwatch.Tick()
		}
		_, ok := stopwatch.Lap()
		require.True(t, ok)
	}

	require.Equal(t, []string{
		"Lap 3: 00:03.000",
		"Lap 2: 00:02.000",
		"Lap 1: 00:01.000",
	}, stopwatch.Laps())
}

func TestStopwatchLapRequiresRunning(t *testing.T) {
	t.Parallel()

	stopwatch := NewStopwatch()
	_, ok := stopwatch.Lap()
	require.False(t, ok)

	stopwatch.Start()
	stopwatch.Stop()
	_, ok = stopwatch.Lap()
	require.False(t, ok)
	require.Empty(t, stopwatch.Laps())
}

func TestFormatStopwatch(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		0:       "00:00.000",
		125034:  "02:05.034",
		59999:   "00:59.999",
		5999990: "99:59.990",
		6000000: "100:00.000",
	}
	for elapsed, want := range cases {
		require.Equal(t, want, FormatStopwatch(elapsed))
	}
}

func TestStopwatchStep(t *testing.T) {
	t.Parallel()

	require.Equal(t, StopwatchTick, NewStopwatch().Step())
	require.Equal(t, StopwatchTick, NewStopwatchWithStep(0).Step())
	require.Equal(t, StopwatchTick, NewStopwatchWithStep(20*time.Millisecond).Step())

	stopwatch := NewStopwatchWithStep(500 * time.Microsecond)
	require.True(t, stopwatch.Start())
	for i := 0; i < 2001; i++ {
		stopwatch.Tick()
	}
	require.EqualValues(t, 1000, stopwatch.ElapsedMS())
	require.Equal(t, "00:01.000", stopwatch.Display())
}
