package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

func newTestMerger(t *testing.T, ctx MergeContext, fields ...Field) *Merger {
	t.Helper()
	return newMerger(newTestEngine(t), NewFieldMap(fields...), ctx)
}

func TestMerger_StoreFieldConflict(t *testing.T) {
	m := newTestMerger(t, StrictContext(), F(chrono.HourOfDay, 21))

	require.NoError(t, m.StoreField(chrono.HourOfDay, 21), "same value is a no-op")
	require.NoError(t, m.StoreField(chrono.MinuteOfDay, 30))

	err := m.StoreField(chrono.HourOfDay, 20)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestMerger_OverflowConflict(t *testing.T) {
	m := newTestMerger(t, LenientContext())

	require.NoError(t, m.StoreTime(chrono.HourOfDay, temporal.MustTime(1, 0, 0, 0), 1))
	require.NoError(t, m.StoreTime(chrono.MinuteOfDay, temporal.MustTime(1, 0, 0, 0), 1))

	err := m.StoreTime(chrono.NanoOfDay, temporal.MustTime(1, 0, 0, 0), 2)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
	assert.Contains(t, err.Error(), "overflow has conflicting values P1D and P2D")
}

func TestMerger_DateSlotWrittenOnce(t *testing.T) {
	m := newTestMerger(t, StrictContext(), F(chrono.EpochDay, 0))

	require.NoError(t, m.StoreDate(chrono.EpochDay, temporal.MustDate(1970, 1, 1)))
	require.NoError(t, m.StoreDate(chrono.EpochDay, temporal.MustDate(1970, 1, 1)))

	err := m.StoreDate(chrono.DayOfMonth, temporal.MustDate(1970, 1, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date from DayOfMonth conflicts")
}

func TestMerger_ValueStrictRange(t *testing.T) {
	m := newTestMerger(t, StrictContext(), F(chrono.MinuteOfHour, 75))

	_, err := m.Value(chrono.MinuteOfHour)
	assert.True(t, IsRangeError(err))
	_, err = m.Value(chrono.HourOfDay)
	assert.True(t, IsUnsupportedFieldError(err))

	lenient := newTestMerger(t, LenientContext(), F(chrono.MinuteOfHour, 75))
	v, err := lenient.Value(chrono.MinuteOfHour)
	require.NoError(t, err)
	assert.Equal(t, int64(75), v)
}

func TestMerger_Fingerprint(t *testing.T) {
	m := newTestMerger(t, StrictContext(), F(chrono.Year, 2011))
	before := m.fingerprint()

	m.MarkProcessed(chrono.Year)
	assert.NotEqual(t, before, m.fingerprint())
}
