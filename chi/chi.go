// Package chi provides ioc integration for the Chi router.
//
// The middleware attaches a registry to each request context, and Handle
// wraps controller methods so the controller is resolved per request.
//
// Example usage:
//
//	registry := ioc.MustNew()
//	ioc.Declare[*UserController](registry, ioc.InjectType[*UserStore](), ioc.Constructor(NewUserController))
//
//	r := chi.NewRouter()
//	r.Use(iocchi.Middleware(registry))
//	r.Get("/users/{id}", iocchi.Handle((*UserController).GetByID))
package chi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/junioryono/ioc"
)

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// Logger receives resolution and panic errors. Defaults to a no-op logger.
	Logger *zap.Logger

	// PanicRecovery enables panic recovery in the handler.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	PanicHandler func(http.ResponseWriter, *http.Request, any)

	// ResolutionErrorHandler is called when the registry is missing or the
	// controller cannot be resolved.
	ResolutionErrorHandler func(http.ResponseWriter, *http.Request, error)
}

// HandlerOption configures the Handle wrapper.
type HandlerOption func(*HandlerConfig)

// WithLogger sets the logger used by the default error handlers.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(c *HandlerConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithPanicRecovery enables or disables panic recovery in the handler.
func WithPanicRecovery(enabled bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicRecovery = enabled
	}
}

// WithPanicHandler sets the handler for panics.
func WithPanicHandler(h func(http.ResponseWriter, *http.Request, any)) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithResolutionErrorHandler sets the error handler for resolution failures.
func WithResolutionErrorHandler(h func(http.ResponseWriter, *http.Request, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{Logger: zap.NewNop()}
}

// Middleware attaches registry to every request context so handlers can
// use ioc.FromContext or Handle.
func Middleware(registry *ioc.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ioc.WithRegistry(r.Context(), registry)))
		})
	}
}

// Handle wraps a controller method. The controller T is resolved from the
// registry on the request context for every request.
//
// Example:
//
//	r.Get("/users/{id}", iocchi.Handle((*UserController).GetByID))
func Handle[T any](method func(T, http.ResponseWriter, *http.Request), opts ...HandlerOption) http.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.Logger
	if cfg.PanicHandler == nil {
		cfg.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
			logger.Error("panic in handler", zap.Any("panic", v), zap.String("path", r.URL.Path))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
	if cfg.ResolutionErrorHandler == nil {
		cfg.ResolutionErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("failed to resolve controller", zap.Error(err), zap.String("path", r.URL.Path))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.PanicRecovery {
			defer func() {
				if v := recover(); v != nil {
					cfg.PanicHandler(w, r, v)
				}
			}()
		}

		controller, err := ioc.ResolveFromContext[T](r.Context())
		if err != nil {
			cfg.ResolutionErrorHandler(w, r, err)
			return
		}

		method(controller, w, r)
	}
}
