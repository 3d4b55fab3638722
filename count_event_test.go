package async

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountEventFiresOnceAllParticipantsAndArmComplete(t *testing.T) {
	var fired atomic.Int64
	ce := NewCountEvent(3, func() { fired.Add(1) })

	ce.Down()
	ce.Down()
	require.EqualValues(t, 0, fired.Load())

	ce.Down()
	require.EqualValues(t, 0, fired.Load(), "still waiting on Arm for the fan-out loop's own phantom count")

	ce.Arm()
	require.EqualValues(t, 1, fired.Load())
}

func TestCountEventArmBeforeParticipantsDoesNotFireEarly(t *testing.T) {
	var fired atomic.Int64
	ce := NewCountEvent(2, func() { fired.Add(1) })

	ce.Arm()
	require.EqualValues(t, 0, fired.Load())

	ce.Down()
	require.EqualValues(t, 0, fired.Load())

	ce.Down()
	require.EqualValues(t, 1, fired.Load())
}
