package ioc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/ioc"
	"github.com/junioryono/ioc/internal/testutil"
)

func TestDeclare(t *testing.T) {
	t.Run("option order does not matter", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.A](r, ioc.Constructor(testutil.NewA)))
		require.NoError(t, ioc.Declare[*testutil.B](r,
			ioc.AsSingleton(),
			ioc.Constructor(testutil.NewB),
			ioc.InjectType[*testutil.A](),
		))

		b1 := testutil.RequireResolve[*testutil.B](t, r)
		b2 := testutil.RequireResolve[*testutil.B](t, r)
		testutil.AssertSameInstance(t, b1, b2)
		assert.True(t, b1.Injected)
	})

	t.Run("Inject options accumulate", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.C](r,
			ioc.InjectType[*testutil.A](),
			ioc.Inject(ioc.TypeOf[*testutil.B]()),
		))

		assert.Equal(t,
			[]any{ioc.TypeOf[*testutil.A](), ioc.TypeOf[*testutil.B]()},
			toAny(r.Dependencies(ioc.TypeOf[*testutil.C]())))
	})

	t.Run("empty Inject declares an empty list", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.Grandfather](r, ioc.InjectType[*testutil.A]()))
		require.NoError(t, ioc.Declare[*testutil.Father](r, ioc.Extends[*testutil.Grandfather](), ioc.Inject()))

		assert.Equal(t,
			[]any{ioc.TypeOf[*testutil.A]()},
			toAny(r.Dependencies(ioc.TypeOf[*testutil.Father]())))
	})

	t.Run("WithProvider", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		fixed := &testutil.D{}
		require.NoError(t, ioc.Declare[*testutil.D](r, ioc.WithProvider(func() (any, error) {
			return fixed, nil
		})))

		testutil.AssertSameInstance(t, fixed, testutil.RequireResolve[*testutil.D](t, r))
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.A](r, nil, ioc.Constructor(testutil.NewA)))
		assert.Equal(t, "a", testutil.RequireResolve[*testutil.A](t, r).Name)
	})

	t.Run("invalid constructor", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		err := ioc.Declare[*testutil.A](r, ioc.Constructor("NewA"))
		assert.ErrorIs(t, err, ioc.ErrInvalidConstructor)
		assert.True(t, ioc.IsConstructorError(err))
	})

	t.Run("self parent", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		err := ioc.Declare[*testutil.A](r, ioc.Extends[*testutil.A]())
		assert.ErrorIs(t, err, ioc.ErrInvalidParent)
	})

	t.Run("nil interceptor", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		err := ioc.Declare[*testutil.A](r, ioc.Intercept(nil))
		assert.ErrorIs(t, err, ioc.ErrNilInterceptor)
	})
}

func TestModule(t *testing.T) {
	t.Run("install runs every step", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, r.Install(testutil.Hierarchy, testutil.Messaging))

		assert.Len(t, r.Types(), 11)
	})

	t.Run("errors name the module", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		bad := ioc.NewModule("bad",
			ioc.Type[*testutil.A](ioc.Constructor(testutil.NewA)),
			ioc.Type[*testutil.B](ioc.Constructor(42)),
		)

		err := r.Install(bad)
		require.Error(t, err)

		var me ioc.ModuleError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, "bad", me.Module)
		assert.ErrorIs(t, err, ioc.ErrInvalidConstructor)
		assert.Contains(t, err.Error(), `module "bad"`)
	})

	t.Run("nested modules", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		inner := ioc.NewModule("inner", ioc.Type[*testutil.A](ioc.Extends[*testutil.A]()))
		outer := ioc.NewModule("outer", inner)

		err := r.Install(outer)

		var me ioc.ModuleError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, "outer", me.Module)
		require.True(t, errors.As(me.Cause, &me))
		assert.Equal(t, "inner", me.Module)
		assert.ErrorIs(t, err, ioc.ErrInvalidParent)
	})

	t.Run("install stops at the first error", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		ran := false
		err := r.Install(
			func(*ioc.Registry) error { return testutil.ErrConstructor },
			func(*ioc.Registry) error {
				ran = true
				return nil
			},
		)

		assert.Same(t, testutil.ErrConstructor, err)
		assert.False(t, ran)
	})

	t.Run("nil modules and steps are skipped", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		assert.NoError(t, r.Install(nil, ioc.NewModule("empty", nil)))
	})
}
