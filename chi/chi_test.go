package chi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/junioryono/ioc"
	iocchi "github.com/junioryono/ioc/chi"
	"github.com/junioryono/ioc/internal/testutil"
)

type greetController struct {
	greeter testutil.Greeter
}

func newGreetController(g testutil.Greeter) *greetController {
	return &greetController{greeter: g}
}

func (c *greetController) Greet(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, c.greeter.Greet(gochi.URLParam(r, "name")))
}

func (c *greetController) Panic(http.ResponseWriter, *http.Request) {
	panic("boom")
}

func newRouter(t *testing.T) (*gochi.Mux, *ioc.Registry) {
	t.Helper()

	r, err := ioc.New(ioc.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.NoError(t, ioc.Provide(r, func() (testutil.Greeter, error) {
		return testutil.EnglishGreeter{}, nil
	}))
	require.NoError(t, ioc.Declare[*greetController](r,
		ioc.InjectType[testutil.Greeter](),
		ioc.Constructor(newGreetController),
	))

	router := gochi.NewRouter()
	router.Use(iocchi.Middleware(r))
	return router, r
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("resolves the controller per request", func(t *testing.T) {
		router, _ := newRouter(t)
		router.Get("/greet/{name}", iocchi.Handle((*greetController).Greet))

		rec := serve(router, "/greet/bob")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello bob", rec.Body.String())
	})

	t.Run("missing registry", func(t *testing.T) {
		var got error
		h := iocchi.Handle((*greetController).Greet,
			iocchi.WithResolutionErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
				got = err
				w.WriteHeader(http.StatusServiceUnavailable)
			}),
		)

		rec := serve(h, "/greet/bob")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.ErrorIs(t, got, ioc.ErrNoRegistry)
	})

	t.Run("resolution failure", func(t *testing.T) {
		router, r := newRouter(t)
		require.NoError(t, ioc.Declare[*testutil.Broken](r, ioc.Constructor(testutil.NewBroken)))
		router.Get("/broken", iocchi.Handle(func(*testutil.Broken, http.ResponseWriter, *http.Request) {
			t.Error("handler should not run")
		}, iocchi.WithLogger(zaptest.NewLogger(t))))

		rec := serve(router, "/broken")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("panic recovery", func(t *testing.T) {
		router, _ := newRouter(t)

		var recovered any
		router.Get("/panic", iocchi.Handle((*greetController).Panic,
			iocchi.WithPanicRecovery(true),
			iocchi.WithPanicHandler(func(w http.ResponseWriter, _ *http.Request, v any) {
				recovered = v
				w.WriteHeader(http.StatusTeapot)
			}),
		))

		rec := serve(router, "/panic")
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "boom", recovered)
	})

	t.Run("default panic handler", func(t *testing.T) {
		router, _ := newRouter(t)
		router.Get("/panic", iocchi.Handle((*greetController).Panic, iocchi.WithPanicRecovery(true)))

		rec := serve(router, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("context carries the registry", func(t *testing.T) {
		router, r := newRouter(t)
		router.Get("/registry", func(w http.ResponseWriter, req *http.Request) {
			got, ok := ioc.FromContext(req.Context())
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = io.WriteString(w, got.ID())
		})

		rec := serve(router, "/registry")
		assert.Equal(t, r.ID(), rec.Body.String())
	})
}
