package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const sessionLookupTimeout = 10 * time.Second

// Authenticate resolves the bearer token into a session. Browsers cannot set
// headers on websocket handshakes, so the token query parameter is accepted too.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), sessionLookupTimeout)
		defer cancel()

		session, err := m.SessionService.GetSessionFromToken(ctx, token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.ContextWithSession(r.Context(), session)))
	})
}

// Authorize checks (role, path, method) against the casbin policy. Paths are
// matched relative to the API prefix.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	prefix := fmt.Sprintf("/%s/%s", m.InternalConfig.App.EndpointPrefix, m.InternalConfig.App.Version)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := utils.GetSessionFromContext(r.Context())
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(err))
			return
		}

		path := strings.TrimPrefix(r.URL.Path, prefix)
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}

		allowed, err := m.Enforcer.Enforce(session.Role, path, r.Method)
		if err != nil {
			m.Log.Error("Middlewares.Authorize error evaluating policy",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(err))
			return
		}
		if !allowed {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbidden(errors.New("policy denied"), session.Role, r.Method, path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get(constvars.HeaderAuthorization); header != "" {
		if strings.HasPrefix(header, constvars.HeaderBearerPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, constvars.HeaderBearerPrefix))
		}
		return ""
	}
	return r.URL.Query().Get(constvars.URLQueryParamToken)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm)
}
