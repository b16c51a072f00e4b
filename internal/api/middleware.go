package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"patentq/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	profileKey
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, echoed in the response and
// attached to the request logger.
func (a *API) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), loggerKey, a.log.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggerFrom(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return l
	}
	return zap.NewNop().Sugar()
}

// requireUser admits requests carrying a valid bearer token whose user still
// exists. The user's profile is stored in the request context.
func (a *API) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.auth.Authenticate(bearerToken(r))
		if err != nil {
			loggerFrom(r.Context()).Infow("rejected token", "path", r.URL.Path, "reason", err)
			fail(w, r, err, "Unauthorized", nil)
			return
		}
		profile, err := a.auth.CurrentUser(r.Context(), userID)
		if err != nil {
			fail(w, r, err, "Error loading user", nil)
			return
		}
		ctx := context.WithValue(r.Context(), profileKey, profile)
		next(w, r.WithContext(ctx))
	})
}

func profileFrom(ctx context.Context) *models.Profile {
	p, _ := ctx.Value(profileKey).(*models.Profile)
	return p
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when there is none.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// recoveryLogger reports recovered panics through zap.
type recoveryLogger struct{ log *zap.SugaredLogger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Errorw("panic recovered", "panic", fmt.Sprint(v...))
}
