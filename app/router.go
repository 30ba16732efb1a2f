package app

import (
	"fmt"
	"net/http"
	"time"

	"maqola/platform/app/publication"
	"maqola/platform/app/root"
	"maqola/platform/app/user"
	"maqola/platform/app/view"
	"maqola/platform/config"
	"maqola/platform/db"
	"maqola/platform/internal"
	"maqola/platform/internal/identity"
	"maqola/platform/internal/policy"
	"maqola/platform/internal/store"
	"maqola/platform/pkg/middleware"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Forms are small, nothing is uploaded
const maxFormSize = 1 << 20

// New wires the database, the services and the router together
func New(cfg *config.Config) (*gin.Engine, *internal.Deps, error) {
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	d, err := internal.NewDeps(cfg, store.NewGorm(database))
	if err != nil {
		return nil, nil, err
	}

	router, err := NewRouter(d)
	if err != nil {
		return nil, nil, err
	}

	return router, d, nil
}

func NewRouter(d *internal.Deps) (*gin.Engine, error) {
	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates, %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	if len(d.Config.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.Config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.Use(
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		identity.Middleware(d.Resolver),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	router.NoRoute(func(c *gin.Context) { view.Error(c, http.StatusNotFound, "Page not found") })
	router.NoMethod(func(c *gin.Context) { view.Error(c, http.StatusMethodNotAllowed, "Method not allowed") })

	entry := policy.Guard(policy.AuthEntry, view.Reject)
	protected := policy.Guard(policy.Protected, view.Reject)
	forms := middleware.BodySizeLimiter(maxFormSize)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// GET /session			-> 204 with a valid session cookie, 401 without
	router.GET("/session", func(c *gin.Context) { root.Session(c, identity.Current(c)) })

	// GET /				-> Every publication, newest first
	router.GET("/", func(c *gin.Context) { publication.Home(c, d) })

	// GET /logout			-> Drops the session cookie
	router.GET("/logout", func(c *gin.Context) { user.UserLogout(c, d) })

	a := router.Group("", entry)
	{
		// GET /register		-> Registration form
		a.GET("/register", user.RegisterPage)

		// POST /register		-> Registers a new user and logs them in
		a.POST("/register", forms, func(c *gin.Context) { user.UserRegister(c, d) })

		// GET /login			-> Login form
		a.GET("/login", user.LoginPage)

		// POST /login			-> Logs in a user and sets the session cookie
		a.POST("/login", forms, func(c *gin.Context) { user.UserLogin(c, d) })
	}

	// GET /dashboard		-> The current user's publications
	router.GET("/dashboard", protected, func(c *gin.Context) { publication.Dashboard(c, d, identity.Current(c)) })

	p := router.Group("/publications")
	{
		// GET /publications/new	-> Form for a new publication
		p.GET("/new", protected, func(c *gin.Context) { publication.NewPage(c, d) })

		// POST /publications/new	-> Publishes as the current user
		p.POST("/new", protected, forms, func(c *gin.Context) { publication.PublicationCreate(c, d, identity.Current(c)) })

		// GET /publications/:id	-> A single publication, open to everyone
		p.GET("/:id", func(c *gin.Context) { publication.PublicationDetail(c, d) })
	}

	return router, nil
}
