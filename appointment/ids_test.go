package appointment_test

import (
	"clinic-appointments/appointment"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDs(t *testing.T) {
	var ids appointment.UUIDs
	a, b := ids.NewID(), ids.NewID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestClockSequence(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	now := frozen
	seq := appointment.NewClockSequence(func() time.Time { return now })

	t.Run("same instant yields increasing ids", func(t *testing.T) {
		first := seq.NewID()
		second := seq.NewID()
		assert.Equal(t, "1700000000000", first)
		assert.Equal(t, "1700000000001", second)
	})

	t.Run("clock going backwards stays monotonic", func(t *testing.T) {
		now = frozen.Add(-time.Hour)
		id, err := strconv.ParseInt(seq.NewID(), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, int64(1_700_000_000_002), id)
	})

	t.Run("clock ahead is used as is", func(t *testing.T) {
		now = frozen.Add(time.Second)
		assert.Equal(t, "1700000001000", seq.NewID())
	})
}

func TestClockSequenceDefaultsToWallClock(t *testing.T) {
	before := time.Now().UnixMilli()
	id, err := strconv.ParseInt(appointment.NewClockSequence(nil).NewID(), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, before)
}
