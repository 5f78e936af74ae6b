package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/config"
	"mnemo-go/internal/handlers"
	"mnemo-go/internal/store"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Слишком много попыток. Попробуйте позже."})
}

// Setup builds the gin engine around the controller. The HTTP layer is a
// thin adapter: every route maps onto one controller command or query.
func Setup(log *zap.Logger, ctrl *app.Controller, blobs store.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	cookieStore := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Behind TLS termination in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("mnemosession", cookieStore))

	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware(log, ctrl))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	authHandler := handlers.NewAuthHandler(log, ctrl)
	stateHandler := handlers.NewStateHandler(log, ctrl)
	taskHandler := handlers.NewTaskHandler(log, ctrl)
	accountHandler := handlers.NewAccountHandler(log, ctrl)
	adminHandler := handlers.NewAdminHandler(log, ctrl)
	progressHandler := handlers.NewProgressHandler(log, blobs)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.GET("/csrf", func(c *gin.Context) {
			token, _ := c.Get(csrfTokenContextKey)
			c.JSON(http.StatusOK, gin.H{"token": token})
		})

		api.POST("/login", limiter, authHandler.Login)
		api.POST("/register", limiter, authHandler.Register)
		api.POST("/logout", authHandler.Logout)

		api.GET("/state", stateHandler.Show)
		api.GET("/state/stream", stateHandler.Stream)
		api.POST("/view", stateHandler.SetView)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks/:id/select", taskHandler.Select)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.GET("/profile", accountHandler.Profile)
			authorized.POST("/password", accountHandler.ChangePassword)

			authorized.POST("/tasks/:id/complete", taskHandler.Complete)
			authorized.POST("/tasks/:id/test/start", taskHandler.StartTest)
			authorized.GET("/tasks/:id/test/time", taskHandler.TestTimeLeft)
			authorized.POST("/tasks/:id/test/submit", taskHandler.SubmitTest)

			authorized.POST("/tasks/:id/progress", progressHandler.Save)
			authorized.GET("/tasks/:id/progress", progressHandler.Load)
			authorized.DELETE("/tasks/:id/progress", progressHandler.Clear)
		}

		admin := api.Group("/admin")
		admin.Use(AuthRequired(), AdminRequired(ctrl))
		{
			admin.POST("/tasks", adminHandler.AddTask)
			admin.PUT("/tasks/:id", adminHandler.UpdateTask)
			admin.DELETE("/tasks/:id", adminHandler.DeleteTask)
			admin.POST("/users/:id/block", adminHandler.BlockUser)
			admin.GET("/stats", adminHandler.Stats)
		}
	}

	return router
}
