package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
	"github.com/rs/cors"

	_ "github.com/aussiebroadwan/tunnelhub/api/tunnelhub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	appName      string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Keys               *keyx.Manager
	Names              store.Names
	CredentialService  *service.CredentialService
	SessionService     *service.SessionService
	TunnelService      *service.TunnelService
	Users              *service.UserDirectory
	KeyRotationService *service.KeyRotationService

	// Admission control. A nil RateLimiter disables rate limiting.
	RateLimiter  *httpx.RateLimiter
	ClientIP     *httpx.ClientIPResolver
	MaxBodyBytes int64
	CORSOrigins  []string

	// RefreshInterval is the dashboard's auto-refresh period in seconds.
	RefreshInterval int

	// Restart is invoked RestartDelay after an authorised restart request.
	Restart      func()
	RestartDelay time.Duration
}

func NewRouter(appName, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		appName:      appName,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		RestartDelay: time.Second,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders,
	}

	return r
}

// ApplyRoutes registers every route and assembles the global middleware
// chain. It must be called once, after the dependencies are set.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTunnels()
	r.registerUsers()
	r.registerKeyRotation()
	r.registerSystem()
	r.registerDashboard()

	r.Mux.Handle("GET /docs/", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))
	r.Mux.Handle("GET /docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently))
	r.Mux.HandleFunc("GET /openapi.json", OpenAPIHandler)

	mws := append([]httpx.Middleware(nil), r.middlewares...)
	if len(r.CORSOrigins) > 0 {
		mws = append(mws, cors.New(cors.Options{
			AllowedOrigins:   r.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type", slogx.RequestIDHeader},
			ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Window", slogx.RequestIDHeader},
			AllowCredentials: true,
		}).Handler)
	}
	mws = append(mws, httpx.ClientIPMiddleware(r.ClientIP))
	if r.RateLimiter != nil {
		mws = append(mws, r.RateLimiter.Middleware())
	}
	mws = append(mws, httpx.BodyLimitMiddleware(r.MaxBodyBytes))

	r.handler = httpx.Chain(r.Mux, mws...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TunnelHub API
//	@version		1.0.0
//	@description	Password-gated dashboard aggregating ngrok tunnels across accounts.
//	@description
//	@description				Passwords are encrypted client-side with the RSA public key from /api/public-key (PKCS#1 v1.5) before being submitted.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tunnelhub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session token from /api/verify. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) lookupSession(token string) (httpx.Principal, bool) {
	sess, ok := r.SessionService.Lookup(token)
	if !ok {
		return httpx.Principal{}, false
	}
	return httpx.Principal{Token: sess.Token, UserID: sess.UserID, IsAdmin: sess.IsAdmin}, true
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Keys:        r.Keys,
		Credentials: r.CredentialService,
		Sessions:    r.SessionService,
	}

	r.Mux.HandleFunc("GET /api/public-key", h.HandlePublicKey)
	r.Mux.HandleFunc("POST /api/verify", h.HandleVerify)
	r.Mux.HandleFunc("POST /api/logout", h.HandleLogout)
}

func (r *Router) registerTunnels() {
	h := &TunnelsHandler{TunnelService: r.TunnelService}

	// Listing is open to anonymous callers; renaming needs a session.
	r.Mux.Handle("GET /api/tunnels",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.OptionalAuthnMiddleware(r.lookupSession),
		),
	)
	r.Mux.Handle("PUT /api/tunnels/{id}/name",
		httpx.Chain(http.HandlerFunc(h.HandleSetName),
			httpx.AuthnMiddleware(r.lookupSession),
		),
	)
	r.Mux.Handle("DELETE /api/tunnels/{id}/name",
		httpx.Chain(http.HandlerFunc(h.HandleClearName),
			httpx.AuthnMiddleware(r.lookupSession),
		),
	)

	r.Mux.HandleFunc("GET /api/tunnels/health/{id}", h.HandleHealth)
	r.Mux.HandleFunc("DELETE /api/tunnels/{id}", h.HandleDelete)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.Users}

	r.Mux.Handle("GET /api/users",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.lookupSession),
			httpx.RequireAdmin,
		),
	)
}

func (r *Router) registerKeyRotation() {
	h := &KeyRotationHandler{KeyRotationService: r.KeyRotationService}

	r.Mux.Handle("POST /api/keys/rotate",
		httpx.Chain(http.HandlerFunc(h.HandleRotate),
			httpx.AuthnMiddleware(r.lookupSession),
			httpx.RequireAdmin,
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.Keys, r.Names))
	r.Mux.Handle("GET /api/health", HealthHandler(r.startTime))
	r.Mux.Handle("GET /api", APIIndexHandler(r.appName, r.buildVersion))

	restart := &RestartHandler{
		Credentials: r.CredentialService,
		Restart:     r.Restart,
		Delay:       r.RestartDelay,
	}
	r.Mux.HandleFunc("POST /api/restart", restart.HandleRestart)
}
