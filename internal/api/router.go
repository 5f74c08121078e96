package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"mindcare/internal/api/controllers"
	"mindcare/internal/config"
	"mindcare/internal/services"
	"mindcare/pkg/metrics"
	"mindcare/pkg/middleware"
	"mindcare/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config      config.Config
	Logger      *slog.Logger
	Accounts    services.AccountServiceInterface
	Account     *controllers.AccountController
	Mood        *controllers.MoodController
	Journal     *controllers.JournalController
	Chat        *controllers.ChatController
	AuthLimiter *middleware.IPRateLimiter
	Recorder    metrics.Recorder
	Gatherer    prometheus.Gatherer `optional:"true"`
}

func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger, p.Recorder))
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "Service is healthy")
	})
	if p.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(p.Gatherer)))
	}
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	authed := middleware.JWTAuthMiddleware(p.Accounts)

	authGroup := r.Group("/auth")
	{
		public := authGroup.Group("")
		if p.AuthLimiter != nil {
			public.Use(p.AuthLimiter.Middleware())
		}
		public.POST("/register", p.Account.Register)
		public.POST("/login", p.Account.Login)
		public.POST("/refresh", p.Account.Refresh)
		public.POST("/logout", p.Account.Logout)

		authGroup.GET("/me", authed, p.Account.Me)
		authGroup.PUT("/updatedetails", authed, p.Account.UpdateDetails)
		authGroup.PUT("/updatepassword", authed, p.Account.UpdatePassword)
	}

	moodGroup := r.Group("/mood", authed)
	{
		moodGroup.GET("", p.Mood.ListMoods)
		moodGroup.POST("", p.Mood.CreateMood)
		moodGroup.GET("/stats", p.Mood.MoodStats)
		moodGroup.GET("/insights", p.Mood.MoodInsights)
		moodGroup.GET("/:id", p.Mood.GetMood)
		moodGroup.PUT("/:id", p.Mood.UpdateMood)
		moodGroup.DELETE("/:id", p.Mood.DeleteMood)
	}

	journalGroup := r.Group("/journal", authed)
	{
		journalGroup.GET("", p.Journal.ListJournals)
		journalGroup.POST("", p.Journal.CreateJournal)
		journalGroup.GET("/stats", p.Journal.JournalStats)
		journalGroup.GET("/:id", p.Journal.GetJournal)
		journalGroup.PUT("/:id", p.Journal.UpdateJournal)
		journalGroup.DELETE("/:id", p.Journal.DeleteJournal)
	}

	chatGroup := r.Group("/chat", authed)
	{
		chatGroup.POST("", p.Chat.Chat)
		chatGroup.POST("/analyze", p.Chat.Analyze)
	}
}
