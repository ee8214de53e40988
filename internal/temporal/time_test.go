package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOf(t *testing.T) {
	tm, err := TimeOf(21, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "21:00", tm.String())
	assert.Equal(t, 21*NanosPerHour, tm.NanoOfDay())

	_, err = TimeOf(24, 0, 0, 0)
	assert.Error(t, err)
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "01:02:03", MustTime(1, 2, 3, 0).String())
	assert.Equal(t, "01:02:03.500", MustTime(1, 2, 3, 500_000_000).String())
	assert.Equal(t, "01:02:03.000001", MustTime(1, 2, 3, 1_000).String())
	assert.Equal(t, "01:02:03.000000001", MustTime(1, 2, 3, 1).String())
}

func TestSplitNanoOfDay(t *testing.T) {
	tm, days := SplitNanoOfDay(25 * NanosPerHour)
	assert.Equal(t, MustTime(1, 0, 0, 0), tm)
	assert.Equal(t, int64(1), days)

	tm, days = SplitNanoOfDay(-NanosPerHour)
	assert.Equal(t, MustTime(23, 0, 0, 0), tm)
	assert.Equal(t, int64(-1), days)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, "Z", UTC.String())
	assert.Equal(t, "+01:00", MustOffset(3600).String())
	assert.Equal(t, "-05:30", MustOffset(-5*3600-1800).String())

	_, err := OffsetOfSeconds(19 * 3600)
	assert.Error(t, err)
}

func TestDateTime_EpochSecondRoundTrip(t *testing.T) {
	dt := DateTimeOf(MustDate(2011, 6, 15), MustTime(21, 30, 5, 0))
	off := MustOffset(3600)

	es := dt.EpochSecond(off)
	back, err := DateTimeOfEpochSecond(es, 0, off)
	require.NoError(t, err)
	assert.Equal(t, dt, back)

	utc, err := DateTimeOfEpochSecond(es, 0, UTC)
	require.NoError(t, err)
	assert.Equal(t, "2011-06-15T20:30:05", utc.String())
}
