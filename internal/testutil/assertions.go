package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/ioc"
)

// RequireResolve resolves T and fails the test on error.
func RequireResolve[T any](t *testing.T, r *ioc.Registry) T {
	t.Helper()
	instance, err := ioc.Resolve[T](r)
	require.NoError(t, err, "failed to resolve %s", ioc.TypeOf[T]())
	return instance
}

// AssertSameInstance verifies two values are the same instance
func AssertSameInstance(t *testing.T, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	assert.Same(t, expected, actual, msgAndArgs...)
}

// AssertDifferentInstances verifies two values are different instances
func AssertDifferentInstances(t *testing.T, first, second any, msgAndArgs ...any) {
	t.Helper()
	assert.NotSame(t, first, second, msgAndArgs...)
}

// AssertFrozen checks that instance implements ioc.Freezer and is frozen.
func AssertFrozen(t *testing.T, instance any) {
	t.Helper()
	f, ok := instance.(ioc.Freezer)
	require.True(t, ok, "%T does not implement ioc.Freezer", instance)
	assert.True(t, f.IsFrozen(), "%T should be frozen", instance)
}

// AssertNotFrozen checks that instance is a Freezer that has not been frozen.
func AssertNotFrozen(t *testing.T, instance any) {
	t.Helper()
	f, ok := instance.(ioc.Freezer)
	require.True(t, ok, "%T does not implement ioc.Freezer", instance)
	assert.False(t, f.IsFrozen(), "%T should not be frozen", instance)
}
