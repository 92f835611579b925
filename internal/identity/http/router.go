package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"

	_ "github.com/aussiebroadwan/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is implemented by backends the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService       *service.AuthService
	UserService       *service.UserService
	RoleService       *service.RoleService
	PermissionService *service.PermissionService

	// Revocation is checked by /readyz when the revocation store lives
	// outside the main database.
	Revocation Pinger

	// AuthLimit throttles login and refresh.
	AuthLimit httpx.RateLimitConfig
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		AuthLimit:    httpx.StrictLimit,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerPermissions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Service API
//	@version		0.1.0
//	@description	User, role and permission management with HS512 session tokens.
//	@description
//	@description				Tokens can be introspected, refreshed within their refreshable window and revoked on logout.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/identity
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated verifies the bearer token, then throttles per subject.
func (r *Router) authenticated(h http.Handler, scopes ...string) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.AuthService)}
	if len(scopes) > 0 {
		mws = append(mws, httpx.RequireAnyScope(scopes...))
	}
	mws = append(mws, httpx.RateLimitBySubject(httpx.LenientLimit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP + username (brute force)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.AuthLimit, "username"),
		),
	)

	// POST /auth/refresh - strict rate limit by IP
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)

	r.Mux.Handle("POST /auth/introspect",
		httpx.Chain(http.HandlerFunc(h.HandleIntrospect),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	admin := domain.RoleScope(domain.RoleAdmin)

	// Public sign-up
	r.Mux.Handle("POST /users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)

	r.Mux.Handle("GET /users", r.authenticated(http.HandlerFunc(h.HandleList), admin))
	r.Mux.Handle("GET /users/myInfo", r.authenticated(http.HandlerFunc(h.HandleMyInfo)))
	r.Mux.Handle("GET /users/{userId}", r.authenticated(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /users/{userId}", r.authenticated(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /users/{userId}", r.authenticated(http.HandlerFunc(h.HandleDelete), admin))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RoleService: r.RoleService}
	admin := domain.RoleScope(domain.RoleAdmin)

	r.Mux.Handle("POST /roles", r.authenticated(http.HandlerFunc(h.HandleCreate), admin))
	r.Mux.Handle("GET /roles", r.authenticated(http.HandlerFunc(h.HandleList), admin))
	r.Mux.Handle("DELETE /roles/{role}", r.authenticated(http.HandlerFunc(h.HandleDelete), admin))
}

func (r *Router) registerPermissions() {
	h := &PermissionsHandler{PermissionService: r.PermissionService}
	admin := domain.RoleScope(domain.RoleAdmin)

	r.Mux.Handle("POST /permissions", r.authenticated(http.HandlerFunc(h.HandleCreate), admin))
	r.Mux.Handle("GET /permissions", r.authenticated(http.HandlerFunc(h.HandleList), admin))
	r.Mux.Handle("DELETE /permissions/{permission}", r.authenticated(http.HandlerFunc(h.HandleDelete), admin))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Revocation),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
