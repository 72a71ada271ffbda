package webserver

import (
	"strconv"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/config"
	"github.com/bthh/CF1-Claude-sub007/src/govapi/data"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func allowedOrigins() []string {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if u := data.GetSetting("frontend_url"); u != "" {
		origins = append(origins, u)
	}
	return origins
}

// settingInt reads a numeric settings-table knob with a default.
func settingInt(name string, def int) int {
	if v := data.GetSetting(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func attachRoutes(r *gin.Engine, cfg config.Config, eng *governance.Engine, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(MetricsMiddleware())

	metricsHandler := promhttp.Handler()
	r.GET("/metrics", func(c *gin.Context) {
		refreshProposalGauges(eng)
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	receipts := data.NewReceipts(db)
	holdings := data.NewHoldings(db, rdb)

	authH := NewAuth(rdb, []byte(cfg.JWTSecret), cfg.VerifierToken)
	propH := NewProposals(eng, receipts, holdings)
	voteH := NewVotes(eng, receipts, holdings)
	adminH := NewAdmin(eng, db)

	// Proposal creation is throttled much harder than voting.
	authLimiter := NewRateLimiter(settingInt("rate_limit_auth", 10), time.Minute)
	proposalLimiter := NewRateLimiter(settingInt("rate_limit_proposals", 5), time.Minute)
	voteLimiter := NewRateLimiter(settingInt("rate_limit_votes", 30), time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", RateLimitMiddleware(authLimiter), authH.Challenge)
		v1.POST("/auth/verify", RateLimitMiddleware(authLimiter), authH.Verify)
		v1.POST("/auth/confirm", authH.Confirm)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		{
			secured.GET("/proposals", propH.List)
			secured.GET("/proposals/mine", propH.Mine)
			secured.GET("/proposals/:id", propH.Get)
			secured.POST("/proposals", RateLimitMiddleware(proposalLimiter), propH.Create)
			secured.POST("/proposals/:id/resubmit", RateLimitMiddleware(proposalLimiter), propH.Resubmit)

			secured.POST("/drafts", RateLimitMiddleware(proposalLimiter), propH.CreateDraft)
			secured.GET("/drafts", propH.ListDrafts)
			secured.PATCH("/drafts/:id", propH.UpdateDraft)
			secured.DELETE("/drafts/:id", propH.DeleteDraft)
			secured.POST("/drafts/:id/submit", RateLimitMiddleware(proposalLimiter), propH.SubmitDraft)

			secured.POST("/votes", RateLimitMiddleware(voteLimiter), voteH.Cast)
			secured.GET("/votes/:id", voteH.Results)
		}

		admin := v1.Group("/admin")
		admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)), AdminMiddleware(db))
		{
			admin.GET("/proposals", adminH.Queue)
			admin.POST("/proposals/:id/begin-review", adminH.BeginReview)
			admin.POST("/proposals/:id/approve", adminH.Approve)
			admin.POST("/proposals/:id/reject", adminH.Reject)
			admin.POST("/proposals/:id/request-changes", adminH.RequestChanges)
			admin.POST("/settings", adminH.SetSetting)
		}
	}
}
