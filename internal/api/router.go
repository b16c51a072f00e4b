// Package api exposes the auth, search and import services over HTTP.
package api

import (
	"io"
	"net/http"

	"patentq/internal/auth"
	"patentq/internal/importer"
	"patentq/internal/patents"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins    []string
	MaxUploadBytes    int64
	UploadRequireAuth bool
	// StaticDir, when set, is served at / for the built client.
	StaticDir string
	// AccessLog receives Apache common log lines. Nil disables it.
	AccessLog io.Writer
}

type API struct {
	auth     *auth.Service
	patents  *patents.Service
	importer *importer.Importer
	log      *zap.SugaredLogger
	opts     Options
}

func New(authSvc *auth.Service, patentSvc *patents.Service, imp *importer.Importer, log *zap.SugaredLogger, opts Options) *API {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &API{auth: authSvc, patents: patentSvc, importer: imp, log: log, opts: opts}
}

// Handler returns the router wrapped in CORS, panic recovery and access
// logging.
func (a *API) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(a.requestID)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/test", a.health).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", a.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", a.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", a.forgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/resend-otp", a.resendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", a.verifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", a.resetPassword).Methods(http.MethodPost)
	api.Handle("/auth/user", a.requireUser(a.currentUser)).Methods(http.MethodGet)

	api.Handle("/patents", a.requireUser(a.listPatents)).Methods(http.MethodGet)
	api.Handle("/patents/search", a.requireUser(a.searchPatents)).Methods(http.MethodGet)
	if a.opts.UploadRequireAuth {
		api.Handle("/patents/upload", a.requireUser(a.uploadPatents)).Methods(http.MethodPost)
	} else {
		api.HandleFunc("/patents/upload", a.uploadPatents).Methods(http.MethodPost)
	}

	if a.opts.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(a.opts.StaticDir)))
	}

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins(a.opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
		handlers.AllowCredentials(),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{a.log}))(h)
	if a.opts.AccessLog != nil {
		h = handlers.LoggingHandler(a.opts.AccessLog, h)
	}
	return h
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
