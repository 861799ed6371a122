package middleware

import (
	"context"
	"fmt"
	"net/http"

	"shareit/config"
	"shareit/infras/otel"
	"shareit/shared/cache"
	"shareit/shared/constant"
	"shareit/shared/failure"

	"github.com/go-chi/chi/v5"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Identity(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.RoutePattern() != "" {
			spanName = fmt.Sprintf("%s %s", request.Method, rctx.RoutePattern())
		}

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.UserAgent(),
			"http.host":       request.Host,
			"http.source":     request.RemoteAddr,
		})

		rec := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(rec, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.status_code": rec.status,
		})
	})
}

// IdentityFromContext returns the acting user id stored by Identity, or a
// validation failure when the request carried no identity header.
func IdentityFromContext(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if userID == constant.Empty {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("missing %s header", constant.RequestHeaderSharerUserID)) // nolint:wrapcheck
	}

	return userID, nil
}

// Identity reads the trusted caller-supplied user id header and exposes it on
// the request context. Endpoints that require an identity reject its absence
// themselves.
func (a *appMiddleware) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		userID := request.Header.Get(constant.RequestHeaderSharerUserID)

		if userID != constant.Empty {
			ctx := context.WithValue(request.Context(), constant.ContextKeyUserID, userID)
			request = request.WithContext(ctx)
		}

		next.ServeHTTP(writer, request)
	})
}
