package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountdownRunsToZeroOnce(t *testing.T) {
	t.Parallel()

	for _, seconds := range []int{0, 1, 5, 61, 3600} {
		countdown := NewCountdown(0)
		require.True(t, countdown.Configure(seconds))
		require.Equal(t, seconds, countdown.Remaining())

		started := countdown.Start()
		require.Equal(t, seconds > 0, started)

		expirations := 0
		for i := 0; i < seconds; i++ {
			if countdown.Tick() {
				expirations++
			}
		}
		require.Zero(t, countdown.Remaining())
		require.Equal(t, seconds > 0, expirations == 1, seconds)
		require.LessOrEqual(t, expirations, 1)
		require.Equal(t, CountdownIdle, countdown.State())

		require.False(t, countdown.Tick())
		require.False(t, countdown.Start())
	}
}

func TestCountdownConfigureWhileRunningIsIgnored(t *testing.T) {
	t.Parallel()

	countdown := NewCountdown(10)
	require.True(t, countdown.Start())
	countdown.Tick()

	require.False(t, countdown.Configure(300))
	require.Equal(t, 9, countdown.Remaining())
	require.Equal(t, 10, countdown.Duration())
}

func TestCountdownPauseResume(t *testing.T) {
	t.Parallel()

	countdown := NewCountdown(5)
	require.False(t, countdown.Pause())
	require.True(t, countdown.Start())
	countdown.Tick()
	countdown.Tick()

	require.True(t, countdown.Pause())
	require.Equal(t, CountdownPaused, countdown.State())
	require.False(t, countdown.Tick())
	require.Equal(t, 3, countdown.Remaining())

	require.True(t, countdown.Configure(8))
	require.Equal(t, 8, countdown.Remaining())

	require.True(t, countdown.Start())
	require.Equal(t, CountdownRunning, countdown.State())
	require.False(t, countdown.Start())
}

func TestCountdownResetRestoresDuration(t *testing.T) {
	t.Parallel()

	countdown := NewCountdown(3)
	require.True(t, countdown.Start())
	countdown.Tick()
	countdown.Tick()
	require.True(t, countdown.Tick())

	countdown.Reset()
	require.Equal(t, CountdownIdle, countdown.State())
	require.Equal(t, 3, countdown.Remaining())
	require.True(t, countdown.Start())
}

func TestCountdownNegativeDurationClamps(t *testing.T) {
	t.Parallel()

	countdown := NewCountdown(-4)
	require.Zero(t, countdown.Remaining())
	require.False(t, countdown.Start())
}

func TestFormatCountdown(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:      "00:00:00",
		59:     "00:00:59",
		600:    "00:10:00",
		3661:   "01:01:01",
		86399:  "23:59:59",
		360000: "100:00:00",
		-5:     "00:00:00",
	}
	for seconds, want := range cases {
		require.Equal(t, want, FormatCountdown(seconds))
	}
}

func TestParseCountdown(t *testing.T) {
	t.Parallel()

	valid := map[string]time.Duration{
		"00:10:00": 10 * time.Minute,
		"1:02:03":  time.Hour + 2*time.Minute + 3*time.Second,
		"23:59:59": 23*time.Hour + 59*time.Minute + 59*time.Second,
		"00:00:00": 0,
	}
	for input, want := range valid {
		got, err := ParseCountdown(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got)
	}

	for _, input := range []string{"", "10:00", "24:00:00", "00:60:00", "00:00:61", "a:b:c", "001:00:00", "00::00"} {
		_, err := ParseCountdown(input)
		require.ErrorIs(t, err, ErrInvalidDuration, input)
	}
}
