package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	moment := time.Date(2026, time.October, 15, 7, 3, 9, 0, time.UTC)
	require.Equal(t, "07:03:09", FormatTime(moment))
	require.Equal(t, "Thursday, October 15, 2026", FormatDate(moment))

	evening := time.Date(2026, time.January, 2, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "23:59:00", FormatTime(evening))
	require.Equal(t, "Friday, January 02, 2026", FormatDate(evening))
}

func TestFixedNowIn(t *testing.T) {
	t.Parallel()

	source := NewFixed(time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC))

	tokyo, err := source.NowIn("Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, "21:00:00", FormatTime(tokyo))

	london, err := source.NowIn("Europe/London")
	require.NoError(t, err)
	require.Equal(t, "13:00:00", FormatTime(london))

	source.Add(90 * time.Second)
	require.Equal(t, "12:01:30", FormatTime(source.Now()))
}

func TestNowInUnknownZone(t *testing.T) {
	t.Parallel()

	for _, zone := range []string{"Mars/Olympus_Mons", "", "Local"} {
		_, err := NewSystem().NowIn(zone)
		require.ErrorIs(t, err, ErrUnknownZone, zone)

		_, err = NewFixed(time.Now()).NowIn(zone)
		require.ErrorIs(t, err, ErrUnknownZone, zone)
	}
}

func TestSystemCachesLocations(t *testing.T) {
	t.Parallel()

	source := NewSystem()
	first, err := source.NowIn("America/New_York")
	require.NoError(t, err)
	second, err := source.NowIn("America/New_York")
	require.NoError(t, err)
	require.Same(t, first.Location(), second.Location())
}

func TestCityName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"America/New_York":               "New York",
		"Europe/London":                  "London",
		"America/Argentina/Buenos_Aires": "Buenos Aires",
		"UTC":                            "UTC",
	}
	for zone, want := range cases {
		require.Equal(t, want, CityName(zone))
	}
}
