package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

const (
	sessionIDCookie     = "session_id"
	sessionSecretCookie = "session_secret"
)

// authMiddleware resolves the session cookies into an AuthContext
func authMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idCookie, err := r.Cookie(sessionIDCookie)
			if err != nil {
				writeError(r.Context(), w, goerr.Wrap(model.ErrUnauthorized, "authentication required"))
				return
			}
			secretCookie, err := r.Cookie(sessionSecretCookie)
			if err != nil {
				writeError(r.Context(), w, goerr.Wrap(model.ErrUnauthorized, "authentication required"))
				return
			}

			auth, err := authUC.ValidateSession(r.Context(), idCookie.Value, secretCookie.Value)
			if err != nil {
				if isAuthError(err) {
					clearSessionCookies(w, r)
				}
				writeError(r.Context(), w, err)
				return
			}

			ctx := model.WithAuthContext(r.Context(), auth)
			logger := logging.From(ctx).With("user_id", auth.UserID)
			ctx = logging.With(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireRole rejects requests of users below role. It must run after
// authMiddleware.
func requireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, ok := model.GetAuthContext(r.Context())
			if !ok {
				writeError(r.Context(), w, goerr.Wrap(model.ErrUnauthorized, "authentication required"))
				return
			}
			if !auth.Allows(role) {
				writeError(r.Context(), w, goerr.Wrap(model.ErrForbidden, "insufficient role",
					goerr.V("role", auth.Role), goerr.V("required", role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLogger logs every request and records request metrics by route
// pattern
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			elapsed := time.Since(start)
			route := routePattern(r)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// routePattern keeps metric labels bounded by using the matched chi pattern
// instead of the raw path
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
