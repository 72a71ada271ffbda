package webserver

import (
	"github.com/bthh/CF1-Claude-sub007/src/govapi/config"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func New(cfg config.Config, eng *governance.Engine, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, eng, db, rdb)
	return g
}
