package digbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap/zaptest"

	"github.com/junioryono/ioc"
	"github.com/junioryono/ioc/digbridge"
	"github.com/junioryono/ioc/internal/testutil"
)

func newRegistry(t *testing.T) *ioc.Registry {
	t.Helper()
	r, err := ioc.New(ioc.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.NoError(t, r.Install(testutil.Hierarchy))
	return r
}

func TestExport(t *testing.T) {
	t.Run("registry types are injectable", func(t *testing.T) {
		r := newRegistry(t)
		c := dig.New()
		require.NoError(t, digbridge.Export(r, c, ioc.TypeOf[*testutil.A](), ioc.TypeOf[*testutil.Son]()))

		err := c.Invoke(func(a *testutil.A, son *testutil.Son) {
			assert.Equal(t, "a", a.Name)
			assert.True(t, son.C.Injected)
			assert.NotSame(t, a, son.A)
		})
		require.NoError(t, err)
	})

	t.Run("one instance per container", func(t *testing.T) {
		r := newRegistry(t)
		c := dig.New()
		require.NoError(t, digbridge.ExportType[*testutil.A](r, c))

		var first, second *testutil.A
		require.NoError(t, c.Invoke(func(a *testutil.A) { first = a }))
		require.NoError(t, c.Invoke(func(a *testutil.A) { second = a }))
		assert.Same(t, first, second)
	})

	t.Run("interface types", func(t *testing.T) {
		r := newRegistry(t)
		require.NoError(t, ioc.Provide(r, func() (testutil.Greeter, error) {
			return testutil.EnglishGreeter{}, nil
		}))
		c := dig.New()
		require.NoError(t, digbridge.ExportType[testutil.Greeter](r, c))

		require.NoError(t, c.Invoke(func(g testutil.Greeter) {
			assert.Equal(t, "hello dig", g.Greet("dig"))
		}))
	})

	t.Run("construction errors surface from Invoke", func(t *testing.T) {
		r := newRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.Broken](r, ioc.Constructor(testutil.NewBroken)))
		c := dig.New()
		require.NoError(t, digbridge.ExportType[*testutil.Broken](r, c))

		err := c.Invoke(func(*testutil.Broken) {})
		require.Error(t, err)
		assert.Same(t, testutil.ErrConstructor, dig.RootCause(err))
	})

	t.Run("wrong provider type", func(t *testing.T) {
		r := newRegistry(t)
		require.NoError(t, r.RegisterProvider(ioc.TypeOf[*testutil.D](), func() (any, error) {
			return "not a D", nil
		}))
		c := dig.New()
		require.NoError(t, digbridge.ExportType[*testutil.D](r, c))

		err := c.Invoke(func(*testutil.D) {})
		assert.ErrorContains(t, err, "registry returned string")
	})

	t.Run("duplicate export", func(t *testing.T) {
		r := newRegistry(t)
		c := dig.New()
		require.NoError(t, digbridge.ExportType[*testutil.A](r, c))
		assert.Error(t, digbridge.ExportType[*testutil.A](r, c))
	})

	t.Run("nil type", func(t *testing.T) {
		r := newRegistry(t)
		assert.ErrorIs(t, digbridge.Export(r, dig.New(), nil), ioc.ErrNilType)
	})
}
