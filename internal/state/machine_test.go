package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSessionLifecycle(t *testing.T) {
	s := NewScanSession(nil)
	assert.Equal(t, StateIdle, s.Current())

	require.NoError(t, s.Begin())
	assert.Equal(t, StateScanning, s.Current())

	s.Persist()
	assert.Equal(t, StatePersisting, s.Current())

	s.Finish()
	assert.Equal(t, StateIdle, s.Current())
}

func TestScanSessionRejectsConcurrentBegin(t *testing.T) {
	s := NewScanSession(nil)

	require.NoError(t, s.Begin())
	assert.ErrorIs(t, s.Begin(), ErrScanInProgress)

	s.Persist()
	assert.ErrorIs(t, s.Begin(), ErrScanInProgress)

	s.Finish()
	assert.NoError(t, s.Begin())
}

func TestScanSessionFail(t *testing.T) {
	t.Run("FromScanning", func(t *testing.T) {
		s := NewScanSession(nil)
		require.NoError(t, s.Begin())

		s.Fail(errors.New("listing unreachable"))

		status := s.Status()
		assert.Equal(t, StateIdle, status.State)
		assert.Equal(t, "listing unreachable", status.LastError)
	})

	t.Run("FromPersisting", func(t *testing.T) {
		s := NewScanSession(nil)
		require.NoError(t, s.Begin())
		s.Persist()

		s.Fail(errors.New("db down"))
		assert.Equal(t, StateIdle, s.Current())
	})

	t.Run("NextBeginClearsLastError", func(t *testing.T) {
		s := NewScanSession(nil)
		require.NoError(t, s.Begin())
		s.Fail(errors.New("boom"))

		require.NoError(t, s.Begin())
		assert.Empty(t, s.Status().LastError)
	})
}

func TestScanSessionOnChange(t *testing.T) {
	var transitions []string
	s := NewScanSession(func(from, to string) {
		transitions = append(transitions, from+"->"+to)
	})

	require.NoError(t, s.Begin())
	s.Persist()
	s.Finish()

	assert.Equal(t, []string{
		"idle->scanning",
		"scanning->persisting",
		"persisting->idle",
	}, transitions)
}
