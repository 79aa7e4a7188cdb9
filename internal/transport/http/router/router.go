package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"maeul-forum/internal/core/auth"
	"maeul-forum/internal/core/cache"
	"maeul-forum/internal/core/config"
	"maeul-forum/internal/repo"
	"maeul-forum/internal/storage"
	"maeul-forum/internal/transport/http/handler"
	mdw "maeul-forum/internal/transport/http/middleware"
)

type Deps struct {
	Log    *zap.Logger
	DB     *gorm.DB
	Tokens *auth.Tokens
	Blobs  storage.BlobStore
	Cache  *cache.Cache // nil disables caching
	Cfg    *config.Config
}

func New(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(64<<20),
		mdw.Timeout(30*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(d.DB)
	posts := repo.NewPostRepo(d.DB)
	comments := repo.NewCommentRepo(d.DB)
	likes := repo.NewLikeRepo(d.DB)
	votes := repo.NewVoteRepo(d.DB)
	help := repo.NewHelpRepo(d.DB)
	files := repo.NewFileRepo(d.DB)
	stats := repo.NewStatsRepo(d.DB)

	maxUpload := int64(d.Cfg.Upload.MaxSizeMB) << 20

	authH := handler.NewAuthHandler(users, d.Tokens, d.Log)
	postH := handler.NewPostHandler(posts, comments, files, d.Log)
	commentH := handler.NewCommentHandler(comments, posts, d.Log)
	likeH := handler.NewLikeHandler(likes, posts, d.Log)
	voteH := handler.NewVoteHandler(votes, posts, d.Log)
	helpH := handler.NewHelpHandler(help, d.Log)
	fileH := handler.NewFileHandler(files, d.Blobs, maxUpload, d.Log)
	adminH := handler.NewAdminHandler(users, stats, d.Cache, d.Log)

	required := mdw.AuthRequired(d.Tokens, users)
	optional := mdw.OptionalAuth(d.Tokens, users)

	api := r.Group("/api")

	// Credential endpoints get a per-IP bucket on top of the global limit.
	ag := api.Group("/auth", mdw.RateLimitPerIP(5, 20))
	{
		ag.POST("/register", authH.Register)
		ag.POST("/login", authH.Login)
		ag.GET("/me", authH.Me)
	}

	pg := api.Group("/posts")
	{
		pg.GET("", postH.List)
		pg.GET("/:id", optional, postH.Get)
		pg.POST("", required, postH.Create)
		pg.PUT("/:id", required, postH.Update)
		pg.DELETE("/:id", required, postH.Delete)
		pg.PATCH("/:id/category", required, mdw.AdminRequired(), postH.UpdateCategory)
	}

	cg := api.Group("/comments", required)
	{
		cg.POST("", commentH.Create)
		cg.PUT("/:id", commentH.Update)
		cg.DELETE("/:id", commentH.Delete)
	}

	lg := api.Group("/likes")
	{
		lg.GET("/posts/:post_id", optional, likeH.Get)
		lg.POST("/posts/:post_id", required, likeH.Toggle)
	}

	vg := api.Group("/votes")
	{
		vg.GET("/post/:post_id", optional, voteH.GetByPost)
		vg.POST("", required, voteH.Create)
		vg.POST("/:vote_id/cast", required, voteH.Cast)
		vg.POST("/:vote_id/close", required, voteH.Close)
	}

	hg := api.Group("/help/requests")
	{
		hg.GET("", helpH.List)
		hg.GET("/:id", optional, helpH.Get)
		hg.POST("", required, helpH.Create)
		hg.PUT("/:id", required, helpH.Update)
		hg.DELETE("/:id", required, helpH.Delete)
		hg.POST("/:id/apply", required, helpH.Apply)
		hg.DELETE("/:id/apply", required, helpH.CancelApplication)
	}
	api.PATCH("/help/applications/:id", required, helpH.Decide)

	fg := api.Group("/files")
	{
		fg.GET("/:name", fileH.Download)
		fg.POST("", required, fileH.Upload)
		fg.DELETE("/:id", required, fileH.Delete)
	}

	adg := api.Group("/admin", required, mdw.AdminRequired())
	{
		adg.GET("/pending-users", adminH.PendingUsers)
		adg.POST("/approve-user/:id", adminH.Approve)
		adg.POST("/reject-user/:id", adminH.Reject)
		adg.GET("/users", adminH.ListUsers)
		adg.DELETE("/users/:id", adminH.DeleteUser)
		adg.GET("/stats", adminH.Stats)
	}

	return r
}
