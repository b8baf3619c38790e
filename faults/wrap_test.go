package faults

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SuccessPassesThrough(t *testing.T) {
	h, notifier, _ := newTestHandler(t)

	err := Run(h, func() error { return nil })

	assert.NoError(t, err)
	assert.Empty(t, notifier.notified)
	assert.Zero(t, h.Stats().TotalErrors)
}

func TestRun_SwallowsNonCritical(t *testing.T) {
	h, notifier, _ := newTestHandler(t)

	err := Run(h, func() error { return errors.New("cache miss") })

	assert.NoError(t, err)
	assert.Equal(t, 1, h.Stats().TotalErrors)
	assert.Len(t, notifier.notified, 1)
}

func TestRun_DefaultsToMedium(t *testing.T) {
	h, _, _ := newTestHandler(t)

	// "connection refused" classifies as High, but Run pins Medium when
	// the caller does not.
	err := Run(h, func() error { return errors.New("connection refused") })

	assert.NoError(t, err)
	assert.Equal(t, 1, h.Stats().ErrorCounts[CategoryAPIRequest][SeverityMedium])
}

func TestRun_CallerSeverityWins(t *testing.T) {
	h, _, _ := newTestHandler(t)

	err := Run(h, func() error { return errors.New("cache miss") }, WithSeverity(SeverityHigh))

	assert.NoError(t, err)
	assert.Equal(t, 1, h.Stats().ErrorCounts[CategoryCacheOperation][SeverityHigh])
}

func TestRun_CriticalReturnsOriginalError(t *testing.T) {
	h, notifier, _ := newTestHandler(t)

	sentinel := errors.New("export stalled")

	err := Run(h, func() error { return sentinel }, WithSeverity(SeverityCritical))

	assert.ErrorIs(t, err, sentinel)
	assert.Len(t, notifier.escalated, 1)
}

func TestRun_PreclassifiedRecordKeepsSeverity(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := New(CategorySystem, SeverityCritical, "disk full")

	err := Run(h, func() error { return rec })

	require.Error(t, err)
	assert.ErrorIs(t, err, rec)
}

func TestRunValue_Success(t *testing.T) {
	h, _, _ := newTestHandler(t)

	v, err := RunValue(h, func() (int, error) { return 42, nil })

	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRunValue_SwallowedFailureYieldsZero(t *testing.T) {
	h, _, _ := newTestHandler(t)

	v, err := RunValue(h, func() ([]string, error) {
		return []string{"partial"}, errors.New("csv parse failed")
	})

	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, h.Stats().TotalErrors)
}

func TestRunValue_CriticalReturnsOriginalError(t *testing.T) {
	h, _, _ := newTestHandler(t)

	sentinel := errors.New("out of memory")

	v, err := RunValue(h, func() (string, error) { return "", sentinel }, WithSeverity(SeverityCritical))

	assert.ErrorIs(t, err, sentinel)
	assert.Empty(t, v)
}
