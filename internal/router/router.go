// Package router sets up the gin engine with all middlewares and
// attaches the API routes.
package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	v1 "github.com/Meghana-Kona/Student-Budget-Tracker/internal/controllers/v1"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router with all middlewares. The returned
// teardown function has to be called when the router is disposed of,
// it releases the Prometheus metrics so that a new router can be
// configured.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is
// passed in. Separating this from Config allows attaching the routes
// to different paths for different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/healthz", GetHealth)
	group.OPTIONS("/healthz", OptionsHealth)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup
	apiV1 := group.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.OPTIONS("", OptionsV1)
	}

	v1.RegisterAuthRoutes(apiV1.Group("/auth"))

	// Everything below requires a bearer token
	authed := apiV1.Group("", auth.Middleware())
	v1.RegisterAllowanceRoutes(authed.Group("/allowances"))
	v1.RegisterExpenseRoutes(authed.Group("/expenses"))
	v1.RegisterRecurringRoutes(authed.Group("/recurring"))
	v1.RegisterLimitRoutes(authed.Group("/limits"))
	v1.RegisterGoalRoutes(authed.Group("/goals"))
	v1.RegisterDashboardRoutes(authed.Group("/dashboard"))
	v1.RegisterInsightsRoutes(authed.Group("/insights"))
	v1.RegisterInvoiceRoutes(authed.Group("/invoices"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Health check endpoint
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root.
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: url + "/version",
			Healthz: url + "/healthz",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth checks that the database is reachable.
func GetHealth(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database is not reachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "ok"})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsHealth(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Auth       string `json:"auth" example:"https://example.com/api/v1/auth"`             // URL of the auth endpoints
	Allowances string `json:"allowances" example:"https://example.com/api/v1/allowances"` // URL of allowance list endpoint
	Expenses   string `json:"expenses" example:"https://example.com/api/v1/expenses"`     // URL of expense list endpoint
	Recurring  string `json:"recurring" example:"https://example.com/api/v1/recurring"`   // URL of recurring definition list endpoint
	Limits     string `json:"limits" example:"https://example.com/api/v1/limits"`         // URL of category limit list endpoint
	Goals      string `json:"goals" example:"https://example.com/api/v1/goals"`           // URL of goal list endpoint
	Dashboard  string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`   // URL of the dashboard endpoint
	Insights   string `json:"insights" example:"https://example.com/api/v1/insights"`     // URL of the insights endpoint
	Invoices   string `json:"invoices" example:"https://example.com/api/v1/invoices"`     // URL of the invoice scanning endpoint
}

// GetV1 returns the link list for v1.
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:       url + "/v1/auth",
			Allowances: url + "/v1/allowances",
			Expenses:   url + "/v1/expenses",
			Recurring:  url + "/v1/recurring",
			Limits:     url + "/v1/limits",
			Goals:      url + "/v1/goals",
			Dashboard:  url + "/v1/dashboard",
			Insights:   url + "/v1/insights",
			Invoices:   url + "/v1/invoices",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
