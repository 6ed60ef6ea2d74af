package http

import (
	"context"
	stdhttp "net/http"
	"net/url"

	"shree-admin/internal/audit"
	"shree-admin/internal/auth"
	"shree-admin/internal/config"
	"shree-admin/internal/gate"
	"shree-admin/internal/http/handler"
	"shree-admin/internal/http/middleware"
	"shree-admin/internal/media"
	"shree-admin/pkg/metrics"
	"shree-admin/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
	// Multipart service forms carry six images; JSON bodies are capped
	// separately by bindStrictJSON.
	requestBodyLimit = "32M"

	msgBackendNotConfigured = "API URL not configured"
)

// WorkspaceStore is the session store as the server sees it: handlers
// resolve workspaces through it and the rate limiter follows its sessions.
type WorkspaceStore interface {
	handler.Workspaces
	Has(sessionID string) bool
	OnRemove(fn func(sessionID string))
}

type ServerDependencies struct {
	Config        *config.Config
	Gate          *gate.Gate
	Authenticator auth.Authenticator
	Workspaces    WorkspaceStore
	Uploader      media.Uploader
	AuditLogger   audit.Recorder
	Logger        echo.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if deps.Logger != nil {
		e.Logger = deps.Logger
	}

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	g := deps.Gate
	if g == nil {
		g = gate.Default()
	}

	// Request ID first, so all logs have it.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders(deps.Config.Server.Environment == "production"))
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.MetricsMiddleware())

	// The gate runs before anything that depends on the credential.
	e.Use(gate.Middleware(g, gate.MiddlewareConfig{
		OnDecision: func(d gate.Decision) {
			metrics.GetMetrics().RecordGateDecision(string(d.Action))
		},
	}))
	e.Use(middleware.SameOrigin())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	globalRateLimiter.TrackSessions(deps.Workspaces)
	deps.Workspaces.OnRemove(globalRateLimiter.ForgetSession)
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	cookies := auth.CookieOptions{
		Secure: deps.Config.Session.SecureCookie,
		MaxAge: auth.CookieTTL,
	}

	authHandler := handler.NewAuthHandler(deps.Authenticator, deps.Workspaces, deps.AuditLogger, cookies)
	dashboardHandler := handler.NewDashboardHandler(deps.Workspaces)
	categoryHandler := handler.NewCategoryHandler(deps.Workspaces, deps.AuditLogger)
	serviceHandler := handler.NewServiceHandler(deps.Workspaces, deps.AuditLogger, deps.Config.Assets.MaxWidth)
	blogHandler := handler.NewBlogHandler(deps.Workspaces, deps.AuditLogger, deps.Uploader, deps.Config.Assets.MaxWidth)
	reviewHandler := handler.NewReviewHandler(deps.Workspaces, deps.AuditLogger)
	enquiryHandler := handler.NewEnquiryHandler(deps.Workspaces, deps.AuditLogger)
	supportHandler := handler.NewSupportHandler(deps.Workspaces, deps.AuditLogger)
	notificationHandler := handler.NewNotificationHandler(deps.Workspaces, deps.AuditLogger)
	contactHandler := handler.NewContactHandler(deps.Workspaces, deps.AuditLogger)
	auditHandler := handler.NewAuditHandler(deps.AuditLogger)

	e.GET("/health", healthCheck)
	metrics.RegisterMetricsRoute(e)
	profiling.RegisterMemoryRoute(e)
	if deps.Config.Server.Profiling {
		profiling.RegisterPprofRoutes(e)
	}

	e.GET(gate.LoginPath, authHandler.LoginView)
	e.POST(gate.LoginPath, authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/logout", authHandler.Logout)

	dash := e.Group(gate.HomePath)
	dash.GET("", dashboardHandler.Stats)
	dash.GET("/audit", auditHandler.Recent)

	dash.GET("/categories", categoryHandler.List)
	dash.POST("/categories", categoryHandler.Create)
	dash.PUT("/categories/reorder", categoryHandler.Reorder)
	dash.PUT("/categories/:id", categoryHandler.Update)
	dash.DELETE("/categories/:id", categoryHandler.Delete)

	dash.GET("/services", serviceHandler.List)
	dash.POST("/services", serviceHandler.Create)
	dash.PUT("/services/:id", serviceHandler.Update)
	dash.DELETE("/services/:id", serviceHandler.Delete)
	dash.PATCH("/services/:id/toggle", serviceHandler.Toggle)

	dash.GET("/blogs", blogHandler.List)
	dash.GET("/blogs/:id", blogHandler.Get)
	dash.POST("/blogs", blogHandler.Create)
	dash.PUT("/blogs/:id", blogHandler.Update)
	dash.DELETE("/blogs/:id", blogHandler.Delete)
	dash.PATCH("/blogs/:id/toggle", blogHandler.Toggle)

	dash.GET("/reviews", reviewHandler.List)
	dash.POST("/reviews", reviewHandler.Create)
	dash.DELETE("/reviews/:id", reviewHandler.Delete)
	dash.PATCH("/reviews/:id/hide", reviewHandler.Hide)

	dash.GET("/enquiries", enquiryHandler.List)
	dash.PATCH("/enquiries/:id/status", enquiryHandler.UpdateStatus)
	dash.DELETE("/enquiries/:id", enquiryHandler.Delete)

	dash.GET("/support", supportHandler.List)
	dash.PATCH("/support/:id/status", supportHandler.UpdateStatus)
	dash.DELETE("/support/:id", supportHandler.Delete)

	dash.GET("/notifications", notificationHandler.Get)
	dash.GET("/notifications/stream", notificationHandler.Stream)
	dash.PATCH("/notifications/:type", notificationHandler.MarkSeen)

	dash.GET("/contact", contactHandler.Get)
	dash.PUT("/contact", contactHandler.Update)

	registerBackendProxy(e, deps.Config.Backend)

	if dir := deps.Config.Server.StaticDir; dir != "" {
		e.Static("/static", dir)
	}

	return &Server{
		echo: e,
		deps: deps,
	}
}

// registerBackendProxy forwards /api/* to the backend origin unchanged.
// Without an origin every call answers 503.
func registerBackendProxy(e *echo.Echo, cfg config.BackendConfig) {
	target, err := url.Parse(cfg.BaseURL)
	if !cfg.Configured() || err != nil {
		e.Any("/api/*", func(c echo.Context) error {
			return c.JSON(stdhttp.StatusServiceUnavailable, map[string]string{
				"error": msgBackendNotConfigured,
			})
		})
		return
	}

	balancer := echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: target}})
	e.Group("/api", echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: balancer,
	}))
}

// Handler exposes the router for tests.
func (s *Server) Handler() stdhttp.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
