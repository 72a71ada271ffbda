package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/config"
	"github.com/bthh/CF1-Claude-sub007/src/govapi/data"
	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"github.com/bthh/CF1-Claude-sub007/src/govapi/webserver"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&governance.Proposal{},
	&types.Member{}, &types.Holding{},
	&types.VoteReceipt{}, &types.Setting{},
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(allModels...)

	if err == nil {
		return
	}

	log.Printf("auto-migrate failed (%v) - dropping & recreating schema", err)
	_ = db.Migrator().DropTable(
		"vote_receipts", "holdings", "proposals", "members", "settings",
	)
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate after drop: %v", err)
	}
}

func ensureAdmin(db *gorm.DB, addr string) {
	var member types.Member
	if err := db.FirstOrCreate(&member, types.Member{
		Address: addr,
	}).Error; err == nil {
		db.Model(&member).Update("is_admin", true)
	}
}

// settingUint resolves a platform constant: settings table first, then the
// env-backed config default.
func settingUint(name string, def uint64) uint64 {
	if v := data.GetSetting(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func settingDays(name string, def int) int {
	if v := data.GetSetting(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	if err := data.LoadSettings(db); err != nil {
		log.Printf("failed to load settings: %v", err)
	}

	if addr := os.Getenv("ADMIN_ADDRESS"); addr != "" {
		ensureAdmin(db, addr)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())
	go data.SettingsService(ctx, db, time.Duration(cfg.PollInterval)*time.Second)

	quorum := settingUint("default_quorum", cfg.QuorumRequired)
	votingDays := settingDays("voting_duration_days", cfg.VotingDays)

	eng := governance.NewEngine(governance.Config{
		Store:             data.NewProposalStore(db),
		Emitter:           data.NewStreamEmitter(rdb),
		QuorumRequired:    quorum,
		DefaultVotingDays: votingDays,
	})
	log.Printf("engine ready: quorum %d, default voting window %d days", quorum, votingDays)

	router := webserver.New(cfg, eng, db, rdb)
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("CF1 governance API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
