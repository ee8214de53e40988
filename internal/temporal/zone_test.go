package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func springForward() TransitionZone {
	return NewTransitionZone("Test/Spring", Transition{
		Local:  DateTimeOf(MustDate(2011, 3, 27), MustTime(1, 0, 0, 0)),
		Before: MustOffset(0),
		After:  MustOffset(3600),
	})
}

func fallBack() TransitionZone {
	return NewTransitionZone("Test/Autumn", Transition{
		Local:  DateTimeOf(MustDate(2011, 10, 30), MustTime(2, 0, 0, 0)),
		Before: MustOffset(3600),
		After:  MustOffset(0),
	})
}

func TestTransitionZone_Gap(t *testing.T) {
	z := springForward()

	before := z.OffsetInfo(DateTimeOf(MustDate(2011, 3, 27), MustTime(0, 59, 0, 0)))
	assert.False(t, before.IsTransition())
	assert.Equal(t, MustOffset(0), before.Offset)

	gap := z.OffsetInfo(DateTimeOf(MustDate(2011, 3, 27), MustTime(1, 30, 0, 0)))
	require.True(t, gap.IsTransition())
	assert.True(t, gap.Transition.IsGap())

	after := z.OffsetInfo(DateTimeOf(MustDate(2011, 3, 27), MustTime(2, 0, 0, 0)))
	assert.False(t, after.IsTransition())
	assert.Equal(t, MustOffset(3600), after.Offset)
}

func TestTransitionZone_Overlap(t *testing.T) {
	z := fallBack()
	local := DateTimeOf(MustDate(2011, 10, 30), MustTime(1, 30, 0, 0))

	info := z.OffsetInfo(local)
	require.True(t, info.IsTransition())
	assert.True(t, info.Transition.IsOverlap())
	assert.True(t, z.IsValidOffset(local, MustOffset(0)))
	assert.True(t, z.IsValidOffset(local, MustOffset(3600)))
	assert.False(t, z.IsValidOffset(local, MustOffset(7200)))
}

func TestResolvers(t *testing.T) {
	z := fallBack()
	local := DateTimeOf(MustDate(2011, 10, 30), MustTime(1, 30, 0, 0))
	info := z.OffsetInfo(local)

	_, err := StrictResolver{}.Resolve(z.ID(), local, info)
	var zre *ZoneResolutionError
	require.ErrorAs(t, err, &zre)
	assert.False(t, zre.Gap)

	off, err := PreTransitionResolver{}.Resolve(z.ID(), local, info)
	require.NoError(t, err)
	assert.Equal(t, MustOffset(3600), off)

	off, err = PostTransitionResolver{}.Resolve(z.ID(), local, info)
	require.NoError(t, err)
	assert.Equal(t, MustOffset(0), off)
}

func TestFixedZone(t *testing.T) {
	z := NewFixedZone(MustOffset(7200))
	local := DateTimeOf(MustDate(2011, 6, 15), Midnight)
	assert.Equal(t, MustOffset(7200), z.OffsetInfo(local).Offset)
	assert.True(t, z.IsValidOffset(local, MustOffset(7200)))
	assert.False(t, z.IsValidOffset(local, UTC))
}
